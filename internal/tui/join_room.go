package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

type joinRoomState struct {
	input textinput.Model
	busy  bool
}

type roomFoundMsg struct {
	room *apisdk.RoomSummary
}

func (m model) JoinRoomSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(joinRoomPage)

	ti := textinput.New()
	ti.Placeholder = "room code"
	ti.CharLimit = 6
	ti.Width = 40
	ti.PromptStyle = m.theme.TextBrand()
	ti.TextStyle = m.theme.TextAccent()
	ti.PlaceholderStyle = m.theme.TextBody()
	ti.Focus()

	m.state.join = joinRoomState{input: ti}
	return m, textinput.Blink
}

func (m model) JoinRoomUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.join

	switch msg := msg.(type) {
	case roomFoundMsg:
		s.busy = false
		return m.ChatSwitch(msg.room.ID)

	case errorMsg:
		s.busy = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m.RoomsSwitch()

		case key.Matches(msg, keys.Enter):
			if s.busy {
				return m, nil
			}
			code := strings.TrimSpace(s.input.Value())
			if code == "" {
				m.error = &visibleError{message: "Room code cannot be empty."}
				return m, nil
			}
			s.busy = true
			return m, m.findRoomCmd(code)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m model) findRoomCmd(code string) tea.Cmd {
	return func() tea.Msg {
		room, err := m.client.Rooms.FindByCode(m.context, code)
		if err != nil {
			return errorMsg{err: err}
		}
		return roomFoundMsg{room: room}
	}
}

func (m model) JoinRoomView() string {
	s := m.state.join

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("Join by Code"),
		"",
		m.theme.TextBody().Render("Enter the 6-character room code."),
		"",
		m.theme.TextAccent().Render("Room code:"),
		s.input.View(),
	}

	if s.busy {
		sections = append(sections, "", m.theme.TextHighlight().Render("Looking up room..."))
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
