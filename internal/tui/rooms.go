package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

type roomsState struct {
	rooms   []apisdk.RoomSummary
	cursor  int
	loading bool
}

type roomsLoadedMsg struct {
	rooms []apisdk.RoomSummary
}

type roomDeletedMsg struct {
	roomID string
}

func (m model) RoomsSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(roomsPage)
	m.state.rooms = roomsState{loading: true}
	return m, m.loadRoomsCmd()
}

func (m model) loadRoomsCmd() tea.Cmd {
	return func() tea.Msg {
		rooms, err := m.client.Rooms.List(m.context)
		if err != nil {
			return errorMsg{err: err}
		}
		return roomsLoadedMsg{rooms: rooms}
	}
}

func (m model) RoomsUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.rooms

	switch msg := msg.(type) {
	case roomsLoadedMsg:
		s.loading = false
		s.rooms = msg.rooms
		if s.cursor >= len(s.rooms) {
			s.cursor = max(len(s.rooms)-1, 0)
		}
		return m, nil

	case roomDeletedMsg:
		return m, m.loadRoomsCmd()

	case errorMsg:
		s.loading = false
		m.error = &visibleError{message: friendlyError(msg.err)}
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "up":
			if s.cursor > 0 {
				s.cursor--
			}
		case msg.String() == "down":
			if s.cursor < len(s.rooms)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(s.rooms) == 0 {
				return m, nil
			}
			return m.ChatSwitch(s.rooms[s.cursor].ID)
		case key.Matches(msg, keys.NewRoomPage):
			if m.user == nil {
				m.error = &visibleError{message: "Log in to create a room."}
				return m, nil
			}
			return m.NewRoomSwitch()
		case key.Matches(msg, keys.JoinPage):
			return m.JoinRoomSwitch()
		case key.Matches(msg, keys.InvitePage):
			if m.user == nil {
				m.error = &visibleError{message: "Log in to see your invite code."}
				return m, nil
			}
			return m.InviteSwitch()
		case key.Matches(msg, keys.WalletPage):
			if m.user == nil {
				m.error = &visibleError{message: "Log in to open your wallet."}
				return m, nil
			}
			return m.WalletSwitch()
		case key.Matches(msg, keys.Delete):
			if m.user == nil || len(s.rooms) == 0 {
				return m, nil
			}
			room := s.rooms[s.cursor]
			if room.CreatedBy.ID != m.user.ID {
				m.error = &visibleError{message: "Only the room creator can delete the room."}
				return m, nil
			}
			return m, m.deleteRoomCmd(room.ID)
		case key.Matches(msg, keys.Logout):
			if err := m.creds.Clear(); err != nil {
				m.error = &visibleError{message: "Could not clear credentials: " + err.Error()}
			}
			m.user = nil
			m.token = ""
			return m.LoginSwitch()
		case msg.String() == "r":
			s.loading = true
			return m, m.loadRoomsCmd()
		}
	}

	return m, nil
}

func (m model) deleteRoomCmd(roomID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Rooms.Delete(m.context, roomID, m.user.ID); err != nil {
			return errorMsg{err: err}
		}
		return roomDeletedMsg{roomID: roomID}
	}
}

func (m model) RoomsView() string {
	s := m.state.rooms

	title := m.theme.TextBrand().Bold(true).Render("Rooms")

	var body string
	switch {
	case s.loading:
		body = m.theme.TextHighlight().Render("Loading rooms...")
	case len(s.rooms) == 0:
		body = m.theme.TextBody().Render("No rooms yet. Press n to create one.")
	default:
		lines := make([]string, 0, len(s.rooms))
		for i, room := range s.rooms {
			line := fmt.Sprintf("%s  %s  %d player(s)",
				room.Name, room.Code, len(room.Participants))
			if i == s.cursor {
				line = m.theme.TextHighlight().Bold(true).Render("> " + line)
			} else {
				line = m.theme.TextBody().Render("  " + line)
			}
			lines = append(lines, line)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent - 4).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}
