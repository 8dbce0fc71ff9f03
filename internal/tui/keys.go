package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mesh-intelligence/objcat/internal/session"
)

// KeyMap defines the key bindings of the catalog editor.
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding // list: open item; inspector: edit cell
	Cancel    key.Binding
	ClearRow  key.Binding

	AddCatalog   key.Binding
	SaveCatalog  key.Binding
	AddObject    key.Binding
	DeleteObject key.Binding
	UpdateObject key.Binding
	RescanParent key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. The function keys stand
// in for the editor's buttons.
var DefaultKeyMap = KeyMap{
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	PrevFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "name"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "value"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/edit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	ClearRow: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "clear row"),
	),
	AddCatalog: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "add catalog"),
	),
	SaveCatalog: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "save catalog"),
	),
	AddObject: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "add object"),
	),
	DeleteObject: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("F4", "delete object"),
	),
	UpdateObject: key.NewBinding(
		key.WithKeys("f5"),
		key.WithHelp("F5", "update object"),
	),
	RescanParent: key.NewBinding(
		key.WithKeys("f6"),
		key.WithHelp("F6", "rescan parent"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.AddCatalog, k.SaveCatalog, k.AddObject, k.DeleteObject,
		k.UpdateObject, k.RescanParent, k.NextFocus, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddCatalog, k.SaveCatalog, k.AddObject, k.DeleteObject, k.UpdateObject, k.RescanParent},
		{k.NextFocus, k.PrevFocus, k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Cancel, k.ClearRow, k.Quit},
	}
}

// buttons maps the button bindings to controller button ids.
func (k KeyMap) buttons() []buttonBinding {
	return []buttonBinding{
		{k.AddCatalog, session.ButtonAddCatalog},
		{k.SaveCatalog, session.ButtonSaveCatalog},
		{k.AddObject, session.ButtonAddObject},
		{k.DeleteObject, session.ButtonDeleteObject},
		{k.UpdateObject, session.ButtonUpdateObject},
		{k.RescanParent, session.ButtonRescanParent},
	}
}

type buttonBinding struct {
	binding key.Binding
	id      string
}
