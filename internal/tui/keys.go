package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Page navigation
	RoomsPage   key.Binding
	NewRoomPage key.Binding
	JoinPage    key.Binding
	InvitePage  key.Binding
	WalletPage  key.Binding

	// Context-specific
	Enter  key.Binding
	Tab    key.Binding
	Delete key.Binding
	Logout key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back/cancel"),
	),

	RoomsPage: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rooms"),
	),
	NewRoomPage: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new room"),
	),
	JoinPage: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("j", "join by code"),
	),
	InvitePage: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "invite"),
	),
	WalletPage: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "wallet"),
	),

	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete room"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "log out"),
	),
}
