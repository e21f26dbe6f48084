package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the portal key bindings.
type KeyMap struct {
	Quit          key.Binding
	SwitchPage    key.Binding
	Up            key.Binding
	Down          key.Binding
	Register      key.Binding
	CycleFilter   key.Binding
	Refresh       key.Binding
	Notifications key.Binding
	Open          key.Binding
	MarkRead      key.Binding
	EditProfile   key.Binding
	Dismiss       key.Binding
}

// DefaultKeyMap is the standard binding set.
var DefaultKeyMap = KeyMap{
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	SwitchPage:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "events/dashboard")),
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Register:      key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "register")),
	CycleFilter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Refresh:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "view notifications")),
	Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open reply")),
	MarkRead:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark read")),
	EditProfile:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
	Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
}
