package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/internal/credstore"
	"github.com/chessmate-app/chessmate/internal/tui/theme"
)

type page = int
type size = int

const (
	splashPage page = iota
	loginPage
	signupPage
	roomsPage
	newRoomPage
	joinRoomPage
	chatPage
	invitePage
	walletPage
)

const (
	undersized size = iota
	small
	medium
	large
)

type state struct {
	splash  splashState
	login   loginState
	signup  signupState
	rooms   roomsState
	newRoom newRoomState
	join    joinRoomState
	chat    chatState
	invite  inviteState
	wallet  walletState
}

type visibleError struct {
	message string
}

// errorMsg surfaces a failed command in the footer error panel.
type errorMsg struct {
	err error
}

type model struct {
	renderer *lipgloss.Renderer
	page     page
	state    state
	context  context.Context
	client   *apisdk.Client
	creds    *credstore.Store

	token string
	user  *apisdk.UserProfile

	error *visibleError

	viewportWidth   int
	viewportHeight  int
	widthContainer  int
	heightContainer int
	widthContent    int
	heightContent   int
	size            size
	theme           theme.Theme
}

func NewModel(renderer *lipgloss.Renderer, client *apisdk.Client, creds *credstore.Store) tea.Model {
	m := model{
		context:  context.Background(),
		page:     splashPage,
		renderer: renderer,
		client:   client,
		creds:    creds,
		token:    creds.Token(),
		user:     creds.User(),
		theme:    theme.BasicTheme(renderer, nil),
	}

	return m
}

func (m model) Init() tea.Cmd {
	return m.SplashInit()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errorMsg:
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil
	case visibleError:
		m.error = &msg
		return m, nil
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height

		switch {
		case m.viewportWidth < 20 || m.viewportHeight < 10:
			m.size = undersized
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 50:
			m.size = small
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 80:
			m.size = medium
			m.widthContainer = 50
			m.heightContainer = int(math.Min(float64(msg.Height), 30))
		default:
			m.size = large
			m.widthContainer = 80
			m.heightContainer = int(math.Min(float64(msg.Height), 30))
		}

		m.widthContent = m.widthContainer - 2
		m.heightContent = m.heightContainer
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			if m.error != nil {
				m.error = nil
				return m, nil
			}
		case key.Matches(msg, keys.Quit):
			if m.page == chatPage && m.state.chat.controller != nil {
				m.state.chat.controller.Close()
			}
			return m, tea.Quit
		}
	}

	switch m.page {
	case splashPage:
		return m.SplashUpdate(msg)
	case loginPage:
		return m.LoginUpdate(msg)
	case signupPage:
		return m.SignupUpdate(msg)
	case roomsPage:
		return m.RoomsUpdate(msg)
	case newRoomPage:
		return m.NewRoomUpdate(msg)
	case joinRoomPage:
		return m.JoinRoomUpdate(msg)
	case chatPage:
		return m.ChatUpdate(msg)
	case invitePage:
		return m.InviteUpdate(msg)
	case walletPage:
		return m.WalletUpdate(msg)
	}

	return m, nil
}

func (m model) View() string {
	if m.size == undersized {
		return m.theme.TextError().Render("terminal too small")
	}

	var content string
	switch m.page {
	case splashPage:
		content = m.SplashView()
	case loginPage:
		content = m.LoginView()
	case signupPage:
		content = m.SignupView()
	case roomsPage:
		content = m.RoomsView()
	case newRoomPage:
		content = m.NewRoomView()
	case joinRoomPage:
		content = m.JoinRoomView()
	case chatPage:
		content = m.ChatView()
	case invitePage:
		content = m.InviteView()
	case walletPage:
		content = m.WalletView()
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		content,
		m.footerView(),
	)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Base().
			MaxWidth(m.widthContainer).
			MaxHeight(m.viewportHeight).
			Render(body),
	)
}

func (m model) SwitchPage(page page) model {
	m.page = page
	return m
}

func (m model) headerView() string {
	bold := m.theme.TextAccent().Bold(true).Render
	base := m.theme.Base().Render

	logo := bold("chessmate")
	if m.user != nil {
		return logo + base("  signed in as ") + m.theme.TextHighlight().Render(m.user.Username)
	}
	return logo + base("  guest")
}

func (m model) footerView() string {
	if m.error != nil {
		return m.theme.PanelError().Padding(0, 1).Width(m.widthContent).Render(m.error.message)
	}

	var hint string
	switch m.page {
	case roomsPage:
		hint = "enter open • n new • j join by code • i invite • w wallet • ctrl+l log out • ctrl+c quit"
	case chatPage:
		hint = "enter send • ctrl+d delete (creator) • esc leave"
	case loginPage, signupPage:
		hint = "tab next field • enter submit • esc back"
	default:
		hint = "esc back • ctrl+c quit"
	}

	return m.theme.Base().
		Faint(true).
		Width(m.widthContent).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border()).
		Render(hint)
}

func friendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case apisdk.IsNetworkError(err):
		return "Cannot reach the server. Check your connection."
	case apisdk.IsUnauthorized(err):
		return "Invalid credentials."
	case apisdk.IsForbidden(err):
		return "You are not allowed to do that."
	case apisdk.IsNotFound(err):
		return "Not found."
	case apisdk.IsValidationError(err):
		return "Some fields are invalid: " + err.Error()
	default:
		return err.Error()
	}
}
