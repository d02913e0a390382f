package modal

import "github.com/charmbracelet/bubbles/key"

// closedKeys holds key bindings while the dialog is closed.
type closedKeys struct {
	Open key.Binding
	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns the closed-state bindings for the help bar.
func (k closedKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Help, k.Quit}
}

// FullHelp returns the closed-state bindings grouped for expanded help.
func (k closedKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open}, {k.Help, k.Quit}}
}

// openKeys holds key bindings while the dialog is open.
type openKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Close  key.Binding
	Quit   key.Binding
}

// ShortHelp returns the open-state bindings for the help bar.
func (k openKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Close}
}

// FullHelp returns the open-state bindings grouped for expanded help.
func (k openKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Submit, k.Close, k.Quit}}
}

// alertKeys holds key bindings while an alert is shown.
type alertKeys struct {
	Dismiss key.Binding
	Quit    key.Binding
}

// ShortHelp returns the alert bindings for the help bar.
func (k alertKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

// FullHelp returns the alert bindings grouped for expanded help.
func (k alertKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Dismiss, k.Quit}}
}

// ClosedKeyMap returns the key bindings for the closed state.
func ClosedKeyMap() closedKeys {
	return closedKeys{
		Open: key.NewBinding(
			key.WithKeys("enter", "o", " ", "space"),
			key.WithHelp("enter/o", "open form"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OpenKeyMap returns the key bindings for the open state.
func OpenKeyMap() openKeys {
	return openKeys{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		// Letters belong to the inputs while the form is open.
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// AlertKeyMap returns the key bindings for a blocking alert.
func AlertKeyMap() alertKeys {
	return alertKeys{
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " ", "space"),
			key.WithHelp("enter", "ok"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
