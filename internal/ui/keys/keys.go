package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the interactive session.
type KeyMap struct {
	Submit  key.Binding
	Roadmap key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Roadmap: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle roadmap"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Roadmap, k.Clear, k.Quit}
}
