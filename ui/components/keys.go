package components

import (
	"github.com/charmbracelet/bubbles/key"
)

// FormKeyMap holds the input form bindings. It satisfies help.KeyMap.
type FormKeyMap struct {
	Submit     key.Binding
	Newline    key.Binding
	Cancel     key.Binding
	NextEffort key.Binding
	NextModel  key.Binding
	NewSession key.Binding
}

func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop"),
		),
		NextEffort: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "effort"),
		),
		NextModel: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "model"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new search"),
		),
	}
}

func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Newline, k.NextEffort, k.NextModel, k.NewSession}
}

func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Newline},
		{k.NextEffort, k.NextModel, k.NewSession},
	}
}
