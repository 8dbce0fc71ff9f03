package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/objcat/internal/widgets"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

const (
	paneWidth   = 28
	cellWidth   = 20
	listHeight  = 12
	defaultRows = 16
)

var (
	colorAccent = lipgloss.Color("#7D56F4")
	colorFaint  = lipgloss.Color("#6C6C6C")
	colorError  = lipgloss.Color("#FF5F5F")
	colorOK     = lipgloss.Color("#5FD787")
)

var (
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFaint).Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(colorAccent)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	selectedStyle    = lipgloss.NewStyle().Reverse(true)
	faintStyle       = lipgloss.NewStyle().Foreground(colorFaint)
)

// visibleRows returns how many inspector rows fit on screen.
func (model Model) visibleRows() int {
	if model.height <= 0 {
		return min(defaultRows, max(model.inspector.RowCount(), 1))
	}
	// Borders, title, header and the two footer lines.
	rows := model.height - 7
	return max(min(rows, model.inspector.RowCount()), 1)
}

// View implements tea.Model.
func (model Model) View() string {
	left := model.pane(
		model.focus == FocusCatalogName || model.focus == FocusMenu,
		"Catalogs",
		model.inputs[inputCatalog].View(),
		"",
		model.renderList(model.menu, model.focus == FocusMenu),
	)
	middle := model.pane(
		model.focus == FocusObjectName || model.focus == FocusObjectParent || model.focus == FocusObjects,
		"Objects",
		model.inputs[inputObject].View(),
		model.inputs[inputParent].View(),
		"",
		model.renderList(model.objects, model.focus == FocusObjects),
	)
	right := model.pane(
		model.focus == FocusInspector,
		"Inspector",
		model.renderInspector(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, model.renderStatus(), model.help.View(model.keys))
}

func (model Model) pane(focused bool, title string, lines ...string) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	content := titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return style.Render(content)
}

func (model Model) renderList(list *widgets.List, focused bool) string {
	items := list.Items()
	if len(items) == 0 {
		return faintStyle.Render("(empty)")
	}
	sel := list.Selected()
	start := 0
	if sel >= listHeight {
		start = sel - listHeight + 1
	}
	end := min(start+listHeight, len(items))

	var b strings.Builder
	for i := start; i < end; i++ {
		text := truncate(items[i], paneWidth-4)
		switch {
		case i == sel && focused:
			b.WriteString(selectedStyle.Render("> " + text))
		case i == sel:
			b.WriteString("> " + text)
		default:
			b.WriteString("  " + text)
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (model Model) renderInspector() string {
	g := model.inspector
	var b strings.Builder
	b.WriteString(faintStyle.Render(pad("name", cellWidth) + " " + pad("value", cellWidth)))

	end := min(model.offset+model.visibleRows(), g.RowCount())
	for row := model.offset; row < end; row++ {
		b.WriteByte('\n')
		for col := types.NameColumn; col <= types.ValueColumn; col++ {
			if col == types.ValueColumn {
				b.WriteByte(' ')
			}
			b.WriteString(model.renderCell(col, row))
		}
	}
	if g.RowCount() > end-model.offset {
		b.WriteString("\n" + faintStyle.Render(fmt.Sprintf("rows %d-%d of %d", model.offset+1, end, g.RowCount())))
	}
	return b.String()
}

func (model Model) renderCell(col, row int) string {
	atCursor := model.focus == FocusInspector && model.row == row && model.col == col
	if atCursor && model.editing {
		return pad(model.cell.View(), cellWidth)
	}
	text := pad(truncate(model.inspector.Cell(col, row), cellWidth), cellWidth)
	if atCursor {
		return selectedStyle.Render(text)
	}
	return text
}

func (model Model) renderStatus() string {
	if model.status == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(colorOK)
	if model.statusErr {
		style = lipgloss.NewStyle().Foreground(colorError)
	}
	return style.Render(model.status)
}

// truncate shortens s to width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
