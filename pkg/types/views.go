package types

// Grid is the two-column property inspector. Column NameColumn holds the
// rendered key, ValueColumn the value.
type Grid interface {
	RowCount() int
	Cell(col, row int) string
	SetCell(col, row int, value string)
	Clear()
}

// Inspector columns.
const (
	NameColumn  = 0
	ValueColumn = 1
)

// FreeRowName marks an unused inspector row; such rows are skipped when an
// object is read back from the grid, as are rows with an empty name.
const FreeRowName = "free"

// List is an ordered list of text items with an optional selection.
type List interface {
	AddItem(text string)
	RemoveItem(index int)
	Items() []string
	// Selected returns the selected index, or -1 when nothing is selected.
	Selected() int
	Clear()
}

// TextField is a single-line text entry.
type TextField interface {
	Text() string
	SetText(text string)
}
