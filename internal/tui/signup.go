package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

const signupFieldCount = 4

type signupState struct {
	inputs [signupFieldCount]textinput.Model
	focus  int
	busy   bool
}

type signedUpMsg struct {
	user *apisdk.UserProfile
}

func (m model) SignupSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(signupPage)

	mk := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 40
		ti.PromptStyle = m.theme.TextBrand()
		ti.TextStyle = m.theme.TextAccent()
		ti.PlaceholderStyle = m.theme.TextBody()
		return ti
	}

	s := signupState{}
	s.inputs[0] = mk("username", 32)
	s.inputs[1] = mk("email", 128)
	s.inputs[2] = mk("password", 72)
	s.inputs[2].EchoMode = textinput.EchoPassword
	s.inputs[3] = mk("referral code (optional)", 8)
	s.inputs[0].Focus()

	m.state.signup = s
	return m, textinput.Blink
}

func (m model) SignupUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.signup

	switch msg := msg.(type) {
	case signedUpMsg:
		s.busy = false
		m.error = nil
		// Accounts log in explicitly after signup; referral points are claimed
		// from the wallet once authenticated.
		return m.LoginSwitch()

	case errorMsg:
		s.busy = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m.LoginSwitch()

		case key.Matches(msg, keys.Tab):
			s.inputs[s.focus].Blur()
			s.focus = (s.focus + 1) % signupFieldCount
			s.inputs[s.focus].Focus()
			return m, textinput.Blink

		case key.Matches(msg, keys.Enter):
			if s.busy {
				return m, nil
			}
			params := apisdk.SignupParams{
				Username:     strings.TrimSpace(s.inputs[0].Value()),
				Email:        strings.TrimSpace(s.inputs[1].Value()),
				Password:     s.inputs[2].Value(),
				ReferralCode: strings.ToUpper(strings.TrimSpace(s.inputs[3].Value())),
			}
			if params.Username == "" || params.Email == "" || params.Password == "" {
				m.error = &visibleError{message: "Username, email and password are required."}
				return m, nil
			}
			s.busy = true
			return m, m.signupCmd(params)
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m model) signupCmd(params apisdk.SignupParams) tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.Auth.Signup(m.context, params)
		if err != nil {
			return errorMsg{err: err}
		}
		return signedUpMsg{user: user}
	}
}

func (m model) SignupView() string {
	s := m.state.signup
	labels := []string{"Username:", "Email:", "Password:", "Referral code:"}

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("Sign Up"),
		"",
	}
	for i, input := range s.inputs {
		sections = append(sections, m.theme.TextAccent().Render(labels[i]), input.View(), "")
	}

	if s.busy {
		sections = append(sections, m.theme.TextHighlight().Render("Creating account..."))
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
