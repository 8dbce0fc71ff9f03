package types

// Index is the ordered list of catalog names offered for loading. Adding a
// name does not create or load the catalog.
type Index struct {
	names ordered[string, struct{}]
}

// NewIndex returns an index holding names, duplicates and empty names
// dropped.
func NewIndex(names ...string) *Index {
	idx := &Index{}
	for _, n := range names {
		idx.Add(n)
	}
	return idx
}

// Add appends name and reports whether it was added. Empty and already
// present names are ignored.
func (x *Index) Add(name string) bool {
	if name == "" || x.names.has(name) {
		return false
	}
	x.names.set(name, struct{}{})
	return true
}

// Has reports whether name is in the index.
func (x *Index) Has(name string) bool {
	return x.names.has(name)
}

// Remove deletes name and reports whether it was present.
func (x *Index) Remove(name string) bool {
	return x.names.remove(name)
}

// Names returns the catalog names in display order.
func (x *Index) Names() []string {
	return x.names.orderedKeys()
}

// Len returns the number of names.
func (x *Index) Len() int {
	return x.names.len()
}

// Clear removes every name.
func (x *Index) Clear() {
	x.names.clear()
}
