package types

import "slices"

// ordered is an insertion-ordered map. The zero value is ready to use.
// Setting an existing key keeps its position; removing a key keeps the
// relative order of the remaining entries.
type ordered[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

func (m *ordered[K, V]) get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

func (m *ordered[K, V]) has(k K) bool {
	_, ok := m.vals[k]
	return ok
}

func (m *ordered[K, V]) set(k K, v V) {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

func (m *ordered[K, V]) remove(k K) bool {
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	if i := slices.Index(m.keys, k); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return true
}

func (m *ordered[K, V]) len() int {
	return len(m.keys)
}

// orderedKeys returns a copy of the keys in insertion order.
func (m *ordered[K, V]) orderedKeys() []K {
	return slices.Clone(m.keys)
}

func (m *ordered[K, V]) clear() {
	m.keys = nil
	m.vals = nil
}
