package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

type loginState struct {
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

type loggedInMsg struct {
	token string
	user  *apisdk.UserProfile
}

func (m model) LoginSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(loginPage)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 32
	username.Width = 40
	username.PromptStyle = m.theme.TextBrand()
	username.TextStyle = m.theme.TextAccent()
	username.PlaceholderStyle = m.theme.TextBody()
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 72
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.PromptStyle = m.theme.TextBrand()
	password.TextStyle = m.theme.TextAccent()
	password.PlaceholderStyle = m.theme.TextBody()

	m.state.login = loginState{
		username: username,
		password: password,
	}

	return m, textinput.Blink
}

func (m model) LoginUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.login

	switch msg := msg.(type) {
	case loggedInMsg:
		s.busy = false
		m.token = msg.token
		m.user = msg.user
		m.error = nil
		if err := m.creds.Save(msg.token, msg.user); err != nil {
			// The session still works; it just won't survive a restart.
			m.error = &visibleError{message: "Could not persist login: " + err.Error()}
		}
		return m.RoomsSwitch()

	case errorMsg:
		s.busy = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab):
			s.focus = (s.focus + 1) % 2
			if s.focus == 0 {
				s.username.Focus()
				s.password.Blur()
			} else {
				s.username.Blur()
				s.password.Focus()
			}
			return m, textinput.Blink

		case key.Matches(msg, keys.Enter):
			if s.busy {
				return m, nil
			}
			username := strings.TrimSpace(s.username.Value())
			password := s.password.Value()
			if username == "" || password == "" {
				m.error = &visibleError{message: "Username and password are required."}
				return m, nil
			}
			s.busy = true
			return m, m.loginCmd(username, password)

		case msg.String() == "ctrl+n":
			return m.SignupSwitch()

		case msg.String() == "ctrl+g":
			// Guest browsing: the directory is readable without an account.
			m.user = nil
			m.token = ""
			return m.RoomsSwitch()
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.username, cmd = s.username.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return m, cmd
}

func (m model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.client.Auth.Login(m.context, apisdk.LoginParams{
			Username: username,
			Password: password,
		})
		if err != nil {
			return errorMsg{err: err}
		}
		user := res.User
		return loggedInMsg{token: res.Token, user: &user}
	}
}

func (m model) LoginView() string {
	s := m.state.login

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("Log In"),
		"",
		m.theme.TextAccent().Render("Username:"),
		s.username.View(),
		"",
		m.theme.TextAccent().Render("Password:"),
		s.password.View(),
	}

	if s.busy {
		sections = append(sections, "", m.theme.TextHighlight().Render("Signing in..."))
	}

	sections = append(sections, "",
		m.theme.TextBody().Faint(true).Render("ctrl+n sign up • ctrl+g browse as guest"))

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
