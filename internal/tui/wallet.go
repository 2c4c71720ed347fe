package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

type walletState struct {
	count    int
	loading  bool
	claiming bool
	claimed  bool
}

type walletLoadedMsg struct {
	profile *apisdk.UserProfile
	count   int
}

type referralClaimedMsg struct {
	profile *apisdk.UserProfile
}

func (m model) WalletSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(walletPage)
	m.state.wallet = walletState{loading: true}
	return m, m.loadWalletCmd()
}

// loadWalletCmd refreshes the profile (points change server-side) and the
// referral count in one command.
func (m model) loadWalletCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.client.Auth.Me(m.context, option.WithBearerToken(m.token))
		if err != nil {
			return errorMsg{err: err}
		}
		count, err := m.client.Wallet.ReferredCount(m.context, profile.ID)
		if err != nil {
			return errorMsg{err: err}
		}
		return walletLoadedMsg{profile: profile, count: count}
	}
}

func (m model) claimReferralCmd() tea.Cmd {
	referredBy := m.user.ReferredBy
	return func() tea.Msg {
		err := m.client.Wallet.AddReferralPoints(m.context,
			apisdk.AddReferralPointsParams{ReferredBy: referredBy},
			option.WithBearerToken(m.token))
		if err != nil {
			return errorMsg{err: err}
		}
		profile, err := m.client.Auth.Me(m.context, option.WithBearerToken(m.token))
		if err != nil {
			return errorMsg{err: err}
		}
		return referralClaimedMsg{profile: profile}
	}
}

func (m model) WalletUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.wallet

	switch msg := msg.(type) {
	case walletLoadedMsg:
		s.loading = false
		s.count = msg.count
		m.user = msg.profile
		return m, nil

	case referralClaimedMsg:
		s.claiming = false
		s.claimed = true
		m.user = msg.profile
		return m, nil

	case errorMsg:
		s.loading = false
		s.claiming = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m.RoomsSwitch()

		case key.Matches(msg, keys.Enter):
			// Claim is idempotent server-side; offering it only when the
			// account was referred keeps the UI honest.
			if m.user.ReferredBy == "" || s.claiming {
				return m, nil
			}
			s.claiming = true
			return m, m.claimReferralCmd()
		}
	}

	return m, nil
}

func (m model) WalletView() string {
	s := m.state.wallet

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("Wallet"),
		"",
	}

	if s.loading {
		sections = append(sections, m.theme.TextHighlight().Render("Loading wallet..."))
	} else {
		sections = append(sections,
			m.theme.TextAccent().Render(fmt.Sprintf("Points: %d", m.user.Points)),
			m.theme.TextAccent().Render(fmt.Sprintf("Skill score: %d", m.user.SkillScore)),
			m.theme.TextBody().Render(fmt.Sprintf("Referrals: %d", s.count)),
		)

		if m.user.ReferredBy != "" {
			sections = append(sections, "")
			switch {
			case s.claiming:
				sections = append(sections, m.theme.TextHighlight().Render("Claiming referral bonus..."))
			case s.claimed:
				sections = append(sections, m.theme.TextBody().Render("Referral bonus credited to your inviter."))
			default:
				sections = append(sections, m.theme.TextBody().Render("enter — credit your inviter's referral bonus"))
			}
		}
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
