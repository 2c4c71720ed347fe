package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chessmate-app/chessmate/internal/session"
)

type chatState struct {
	controller *session.Controller
	events     chan tea.Msg
	input      textinput.Model
}

// sessionChangedMsg means the controller mutated observable state; the view
// re-reads everything from the controller, so the message carries nothing.
type sessionChangedMsg struct{}

// sessionClosedMsg is the controller's navigate-away signal.
type sessionClosedMsg struct{}

type sessionOpenedMsg struct {
	phase session.Phase
}

func (m model) ChatSwitch(roomID string) (model, tea.Cmd) {
	m = m.SwitchPage(chatPage)

	events := make(chan tea.Msg, 100)

	identity := session.NewSDKIdentity(m.client.Auth, m.token)
	directory := session.NewSDKDirectory(m.client.Rooms)
	factory := session.NewSDKChannelFactory(m.client.Rooms)
	ctrl := session.NewController(identity, directory, factory, nil)

	ctrl.OnChange(func() {
		select {
		case events <- sessionChangedMsg{}:
		default:
			// A pending change notification is already queued; the view reads
			// the full state when it lands, so dropping this one loses nothing.
		}
	})
	ctrl.OnNavigateAway(func() {
		events <- sessionClosedMsg{}
	})

	ti := textinput.New()
	ti.Placeholder = "say something..."
	ti.CharLimit = 512
	ti.Width = m.widthContent - 4
	ti.PromptStyle = m.theme.TextBrand()
	ti.TextStyle = m.theme.TextAccent()
	ti.PlaceholderStyle = m.theme.TextBody()
	ti.Focus()

	m.state.chat = chatState{
		controller: ctrl,
		events:     events,
		input:      ti,
	}

	openCmd := func() tea.Msg {
		return sessionOpenedMsg{phase: ctrl.Open(m.context, roomID)}
	}

	return m, tea.Batch(openCmd, waitForSessionEvent(events), textinput.Blink)
}

func waitForSessionEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m model) ChatUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.chat

	switch msg := msg.(type) {
	case sessionOpenedMsg:
		return m, nil

	case sessionChangedMsg:
		return m, waitForSessionEvent(s.events)

	case sessionClosedMsg:
		return m.RoomsSwitch()

	case errorMsg:
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, waitForSessionEvent(s.events)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			s.controller.LeaveRoom()
			return m.RoomsSwitch()

		case key.Matches(msg, keys.Delete):
			ctrl := s.controller
			return m, func() tea.Msg {
				if err := ctrl.DeleteRoom(m.context); err != nil {
					return errorMsg{err: err}
				}
				return nil
			}

		case key.Matches(msg, keys.Enter):
			text := s.input.Value()
			s.input.SetValue("")
			s.controller.SendMessage(text)
			return m, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m model) ChatView() string {
	s := m.state.chat
	ctrl := s.controller
	if ctrl == nil {
		return ""
	}

	switch ctrl.Phase() {
	case session.PhaseInitializing:
		return m.centeredNotice(m.theme.TextHighlight().Render("Opening room..."))

	case session.PhaseRoomUnavailable:
		return m.centeredNotice(lipgloss.JoinVertical(
			lipgloss.Center,
			m.theme.TextError().Render(ctrl.UnavailableReason()),
			"",
			m.theme.TextBody().Faint(true).Render("esc to go back"),
		))

	case session.PhaseClosing, session.PhaseClosed:
		return m.centeredNotice(m.theme.TextBody().Render("Session closed."))
	}

	var title string
	if room := ctrl.Room(); room != nil {
		title = m.theme.TextBrand().Bold(true).Render(room.Name) +
			m.theme.TextBody().Render("  code "+room.Code)
	}

	messages := ctrl.Messages()
	visible := m.heightContent - 8
	if visible < 1 {
		visible = 1
	}
	if len(messages) > visible {
		messages = messages[len(messages)-visible:]
	}
	log := m.theme.TextAccent().Render(lipgloss.JoinVertical(lipgloss.Left, messages...))
	if len(messages) == 0 {
		log = m.theme.TextBody().Faint(true).Render("No messages yet.")
	}

	var composer string
	if ctrl.CanSend() {
		composer = s.input.View()
	} else {
		composer = m.theme.TextBody().Faint(true).Render("Log in to send messages.")
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", log, "", composer))
}

func (m model) centeredNotice(content string) string {
	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(content)
}
