package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inviteState struct {
	count   int
	loading bool
}

type referredCountMsg struct {
	count int
}

func (m model) InviteSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(invitePage)
	m.state.invite = inviteState{loading: true}
	return m, m.referredCountCmd()
}

func (m model) referredCountCmd() tea.Cmd {
	return func() tea.Msg {
		count, err := m.client.Wallet.ReferredCount(m.context, m.user.ID)
		if err != nil {
			return errorMsg{err: err}
		}
		return referredCountMsg{count: count}
	}
}

func (m model) InviteUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.invite

	switch msg := msg.(type) {
	case referredCountMsg:
		s.loading = false
		s.count = msg.count
		return m, nil

	case errorMsg:
		s.loading = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) {
			return m.RoomsSwitch()
		}
	}

	return m, nil
}

func (m model) InviteView() string {
	s := m.state.invite

	code := m.theme.TextHighlight().Bold(true).Render(m.user.ReferralCode)

	var count string
	if s.loading {
		count = m.theme.TextBody().Render("Counting referrals...")
	} else {
		count = m.theme.TextBody().Render(fmt.Sprintf("%d friend(s) joined with your code", s.count))
	}

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("Invite Friends"),
		"",
		m.theme.TextBody().Render("Share your referral code. You earn wallet points"),
		m.theme.TextBody().Render("for every friend who signs up with it."),
		"",
		m.theme.TextAccent().Render("Your code: ") + code,
		"",
		count,
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
