package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

type splashState struct {
	delay bool
	auth  bool
}

type delayCompleteMsg struct{}

// authCheckedMsg carries the resolved identity; nil user means guest.
type authCheckedMsg struct {
	user *apisdk.UserProfile
}

func (m model) SplashInit() tea.Cmd {
	delay := tea.Tick(time.Millisecond*800, func(t time.Time) tea.Msg {
		return delayCompleteMsg{}
	})

	check := func() tea.Msg {
		if m.token == "" {
			return authCheckedMsg{}
		}
		user, err := m.client.Auth.Me(m.context, option.WithBearerToken(m.token))
		if err != nil {
			// Stale or revoked token; fall back to guest.
			return authCheckedMsg{}
		}
		return authCheckedMsg{user: user}
	}

	return tea.Batch(delay, check)
}

func (m model) SplashUpdate(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case delayCompleteMsg:
		m.state.splash.delay = true
	case authCheckedMsg:
		m.state.splash.auth = true
		m.user = msg.user
		if msg.user == nil {
			m.token = ""
		}
	}

	if m.state.splash.delay && m.state.splash.auth {
		if m.user != nil {
			return m.RoomsSwitch()
		}
		return m.LoginSwitch()
	}

	return m, nil
}

func (m model) SplashView() string {
	logo := m.theme.TextBrand().Bold(true).Render("♞ chessmate")
	sub := m.theme.TextBody().Render("rooms, chat, referrals")

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, logo, "", sub))
}
