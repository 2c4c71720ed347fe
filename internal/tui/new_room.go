package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

type newRoomState struct {
	input textinput.Model
	busy  bool
}

type roomCreatedMsg struct {
	room *apisdk.RoomSummary
}

func (m model) NewRoomSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(newRoomPage)

	ti := textinput.New()
	ti.Placeholder = "room name"
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = m.theme.TextBrand()
	ti.TextStyle = m.theme.TextAccent()
	ti.PlaceholderStyle = m.theme.TextBody()
	ti.Focus()

	m.state.newRoom = newRoomState{input: ti}
	return m, textinput.Blink
}

func (m model) NewRoomUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.newRoom

	switch msg := msg.(type) {
	case roomCreatedMsg:
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
			name := strings.TrimSpace(s.input.Value())
			if name == "" {
				m.error = &visibleError{message: "Room name cannot be empty."}
				return m, nil
			}
			s.busy = true
			return m, m.createRoomCmd(name)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m model) createRoomCmd(name string) tea.Cmd {
	return func() tea.Msg {
		room, err := m.client.Rooms.Create(m.context, apisdk.CreateRoomParams{
			Name:      name,
			CreatedBy: m.user.ID,
		})
		if err != nil {
			return errorMsg{err: err}
		}
		return roomCreatedMsg{room: room}
	}
}

func (m model) NewRoomView() string {
	s := m.state.newRoom

	sections := []string{
		m.theme.TextBrand().Bold(true).Render("New Room"),
		"",
		m.theme.TextAccent().Render("Room name:"),
		s.input.View(),
	}

	if s.busy {
		sections = append(sections, "", m.theme.TextHighlight().Render("Creating room..."))
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
