// Package tui is the interactive catalog editor. It hosts the in-memory
// widgets and the session controller in a bubbletea program: text fields
// for the catalog and object names, the catalog menu, the object list and
// the property inspector. Function keys act as the editor's buttons.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/objcat/internal/session"
	"github.com/mesh-intelligence/objcat/internal/widgets"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// Focus identifies the component receiving keyboard input.
type Focus int

// Focus order, cycled by tab.
const (
	FocusCatalogName Focus = iota
	FocusMenu
	FocusObjectName
	FocusObjectParent
	FocusObjects
	FocusInspector
	focusCount
)

// Indexes into Model.inputs.
const (
	inputCatalog = iota
	inputObject
	inputParent
)

// Model implements tea.Model for the catalog editor.
type Model struct {
	controller *session.Controller
	fields     [3]*widgets.TextField
	menu       *widgets.List
	objects    *widgets.List
	inspector  *widgets.Grid
	log        *zap.Logger

	keys   KeyMap
	help   help.Model
	inputs [3]textinput.Model
	cell   textinput.Model

	focus   Focus
	row     int
	col     int
	offset  int
	editing bool

	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel builds the widgets, session and controller over store and loads
// the catalog index. An index load failure is shown in the status line.
func NewModel(store types.TextStore, config types.Config, log *zap.Logger) Model {
	config = config.WithDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	model := Model{
		menu:      widgets.NewList(),
		objects:   widgets.NewList(),
		inspector: widgets.NewInspector(config.GridRows),
		log:       log,
		keys:      DefaultKeyMap,
		help:      help.New(),
	}
	for i := range model.fields {
		model.fields[i] = widgets.NewTextField("")
	}

	s := session.New(store, session.Views{
		Inspector: model.inspector,
		Objects:   model.objects,
		Menu:      model.menu,
	}, log, config.IndexName)
	model.controller = session.NewController(s, session.Fields{
		CatalogName:  model.fields[inputCatalog],
		ObjectName:   model.fields[inputObject],
		ObjectParent: model.fields[inputParent],
	})

	prompts := [3]string{"catalog: ", "object:  ", "parent:  "}
	for i := range model.inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.CharLimit = 128
		in.Width = paneWidth - len(prompts[i]) - 1
		model.inputs[i] = in
	}
	model.cell = textinput.New()
	model.cell.Prompt = ""
	model.cell.Width = cellWidth

	model.setFocus(FocusCatalogName)
	if err := model.controller.Init(); err != nil {
		model.setError(err)
	} else {
		model.setStatus("ready")
	}
	return model
}

// Controller returns the model's controller.
func (model Model) Controller() *session.Controller {
	return model.controller
}

// Focus returns the focused component.
func (model Model) Focus() Focus {
	return model.focus
}

// Status returns the status line text and whether it reports an error.
func (model Model) Status() (string, bool) {
	return model.status, model.statusErr
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Key events go to the cell editor while a
// cell is being edited, then to the global bindings, then to the focused
// component.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		return model, nil

	case tea.KeyMsg:
		if model.editing {
			return model.handleCellKeys(message)
		}

		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		for _, b := range model.keys.buttons() {
			if key.Matches(message, b.binding) {
				model.press(b.id)
				return model, nil
			}
		}

		switch {
		case key.Matches(message, model.keys.NextFocus):
			cmd := model.setFocus((model.focus + 1) % focusCount)
			return model, cmd
		case key.Matches(message, model.keys.PrevFocus):
			cmd := model.setFocus((model.focus + focusCount - 1) % focusCount)
			return model, cmd
		}

		switch model.focus {
		case FocusCatalogName, FocusObjectName, FocusObjectParent:
			return model.handleInputKeys(message)
		case FocusMenu:
			model.handleListKeys(message, model.menu, session.ListCatalogMenu)
		case FocusObjects:
			model.handleListKeys(message, model.objects, session.ListCatalogObjects)
		case FocusInspector:
			return model.handleInspectorKeys(message)
		}
	}
	return model, nil
}

// press runs a button and reports the outcome.
func (model *Model) press(id string) {
	err := model.controller.OnButtonClick(id)
	model.syncInputs()
	if err != nil {
		model.setError(err)
		return
	}
	model.log.Debug("button", zap.String("id", id))
	model.setStatus(id + ": ok")
}

func (model Model) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	i := model.inputIndex()
	var cmd tea.Cmd
	model.inputs[i], cmd = model.inputs[i].Update(message)
	model.fields[i].SetText(model.inputs[i].Value())
	return model, cmd
}

func (model *Model) handleListKeys(message tea.KeyMsg, list *widgets.List, id string) {
	switch {
	case key.Matches(message, model.keys.Up):
		list.Move(-1)
	case key.Matches(message, model.keys.Down):
		list.Move(1)
	case key.Matches(message, model.keys.Select):
		sel := list.Selected()
		if sel < 0 {
			return
		}
		text := list.Item(sel)
		err := model.controller.OnListClick(id, text)
		model.syncInputs()
		if err != nil {
			model.setError(err)
			return
		}
		model.row, model.col, model.offset = 0, 0, 0
		model.setStatus("opened " + text)
	}
}

func (model Model) handleInspectorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := model.inspector.RowCount()
	switch {
	case key.Matches(message, model.keys.Up):
		if model.row > 0 {
			model.row--
		}
	case key.Matches(message, model.keys.Down):
		if model.row < rows-1 {
			model.row++
		}
	case key.Matches(message, model.keys.Left):
		model.col = types.NameColumn
	case key.Matches(message, model.keys.Right):
		model.col = types.ValueColumn
	case key.Matches(message, model.keys.ClearRow):
		model.inspector.SetCell(types.NameColumn, model.row, "")
		model.inspector.SetCell(types.ValueColumn, model.row, "")
	case key.Matches(message, model.keys.Select):
		if rows == 0 {
			return model, nil
		}
		model.editing = true
		model.cell.SetValue(model.inspector.Cell(model.col, model.row))
		model.cell.CursorEnd()
		cmd := model.cell.Focus()
		return model, cmd
	}
	model.scrollToRow()
	return model, nil
}

func (model Model) handleCellKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Select):
		model.inspector.SetCell(model.col, model.row, model.cell.Value())
		model.stopEditing()
		return model, nil
	case key.Matches(message, model.keys.Cancel):
		model.stopEditing()
		return model, nil
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	}
	var cmd tea.Cmd
	model.cell, cmd = model.cell.Update(message)
	return model, cmd
}

func (model *Model) stopEditing() {
	model.editing = false
	model.cell.Blur()
	model.cell.SetValue("")
}

// scrollToRow keeps the cursor row inside the visible window.
func (model *Model) scrollToRow() {
	visible := model.visibleRows()
	if model.row < model.offset {
		model.offset = model.row
	}
	if model.row >= model.offset+visible {
		model.offset = model.row - visible + 1
	}
}

// setFocus moves keyboard focus and focuses the matching text input.
func (model *Model) setFocus(f Focus) tea.Cmd {
	model.focus = f
	var cmd tea.Cmd
	for i := range model.inputs {
		model.inputs[i].Blur()
	}
	if i := model.inputIndex(); i >= 0 {
		cmd = model.inputs[i].Focus()
	}
	return cmd
}

func (model Model) inputIndex() int {
	switch model.focus {
	case FocusCatalogName:
		return inputCatalog
	case FocusObjectName:
		return inputObject
	case FocusObjectParent:
		return inputParent
	}
	return -1
}

// syncInputs copies field text the controller may have changed back into
// the text inputs.
func (model *Model) syncInputs() {
	for i, f := range model.fields {
		if model.inputs[i].Value() != f.Text() {
			model.inputs[i].SetValue(f.Text())
		}
	}
}

func (model *Model) setStatus(text string) {
	model.status = text
	model.statusErr = false
}

func (model *Model) setError(err error) {
	model.log.Warn("operation failed", zap.Error(err))
	model.status = err.Error()
	model.statusErr = true
}

// Run starts the editor on the terminal and blocks until it exits.
func Run(store types.TextStore, config types.Config, log *zap.Logger) error {
	program := tea.NewProgram(NewModel(store, config, log), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
