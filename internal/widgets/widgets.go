// Package widgets provides in-memory implementations of the inspector grid,
// list and text field views. The TUI renders them; the CLI and tests drive
// them directly.
package widgets

import "github.com/mesh-intelligence/objcat/pkg/types"

// Compile-time interface checks.
var (
	_ types.Grid      = (*Grid)(nil)
	_ types.List      = (*List)(nil)
	_ types.TextField = (*TextField)(nil)
)

// Grid is a fixed-size table of string cells addressed by column and row.
// Out-of-range reads return "" and out-of-range writes are ignored.
type Grid struct {
	cols  int
	cells [][]string
}

// NewGrid returns a grid with the given dimensions.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return &Grid{cols: cols, cells: cells}
}

// NewInspector returns a two-column property grid with rows rows.
func NewInspector(rows int) *Grid {
	return NewGrid(2, rows)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.cells)
}

// ColCount returns the number of columns.
func (g *Grid) ColCount() int {
	return g.cols
}

func (g *Grid) inRange(col, row int) bool {
	return row >= 0 && row < len(g.cells) && col >= 0 && col < g.cols
}

// Cell returns the text at (col, row).
func (g *Grid) Cell(col, row int) string {
	if !g.inRange(col, row) {
		return ""
	}
	return g.cells[row][col]
}

// SetCell sets the text at (col, row).
func (g *Grid) SetCell(col, row int, value string) {
	if !g.inRange(col, row) {
		return
	}
	g.cells[row][col] = value
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = ""
		}
	}
}

// UsedRows returns the number of leading rows up to and including the last
// row with a non-empty cell.
func (g *Grid) UsedRows() int {
	for r := len(g.cells) - 1; r >= 0; r-- {
		for _, c := range g.cells[r] {
			if c != "" {
				return r + 1
			}
		}
	}
	return 0
}

// List is an ordered list of items with a single optional selection.
type List struct {
	items    []string
	selected int
}

// NewList returns an empty list with no selection.
func NewList() *List {
	return &List{selected: -1}
}

// AddItem appends text.
func (l *List) AddItem(text string) {
	l.items = append(l.items, text)
}

// RemoveItem removes the item at index. The selection follows its item
// and is dropped when the selected item is removed.
func (l *List) RemoveItem(index int) {
	if index < 0 || index >= len(l.items) {
		return
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	switch {
	case l.selected == index:
		l.selected = -1
	case l.selected > index:
		l.selected--
	}
}

// Items returns a copy of the items.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Item returns the item at index, or "" when out of range.
func (l *List) Item(index int) string {
	if index < 0 || index >= len(l.items) {
		return ""
	}
	return l.items[index]
}

// IndexOf returns the index of the first item equal to text, or -1.
func (l *List) IndexOf(text string) int {
	for i, it := range l.items {
		if it == text {
			return i
		}
	}
	return -1
}

// Selected returns the selected index, or -1.
func (l *List) Selected() int {
	return l.selected
}

// Select sets the selection. An out-of-range index clears it.
func (l *List) Select(index int) {
	if index < 0 || index >= len(l.items) {
		l.selected = -1
		return
	}
	l.selected = index
}

// Move shifts the selection by delta, clamped to the list bounds. With no
// selection it selects the first item.
func (l *List) Move(delta int) {
	if len(l.items) == 0 {
		l.selected = -1
		return
	}
	if l.selected < 0 {
		l.selected = 0
		return
	}
	l.selected = min(max(l.selected+delta, 0), len(l.items)-1)
}

// Clear removes all items and the selection.
func (l *List) Clear() {
	l.items = nil
	l.selected = -1
}

// TextField holds a single line of text.
type TextField struct {
	text string
}

// NewTextField returns a field containing text.
func NewTextField(text string) *TextField {
	return &TextField{text: text}
}

// Text returns the field contents.
func (f *TextField) Text() string {
	return f.text
}

// SetText replaces the field contents.
func (f *TextField) SetText(text string) {
	f.text = text
}
