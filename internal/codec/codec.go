// Package codec turns catalogs and catalog indexes into text lines and back.
//
// An index is one catalog name per line. A catalog is, for each object in
// order, the object's name on its own line followed by a property block: the
// number of properties, then one "key=value" line per property. Keys are
// rendered with types.Key.String, so shadow keys carry the "*" marker.
// Backslash, carriage return and newline are escaped everywhere; "=" is
// escaped in keys so the first unescaped "=" always ends the key.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

// EncodeIndex renders the index one escaped name per line.
func EncodeIndex(idx *types.Index) []string {
	names := idx.Names()
	lines := make([]string, 0, len(names))
	for _, n := range names {
		lines = append(lines, escape(n, false))
	}
	return lines
}

// DecodeIndex parses lines produced by EncodeIndex. Blank lines and
// duplicate names are ignored.
func DecodeIndex(lines []string) *types.Index {
	idx := types.NewIndex()
	for _, l := range lines {
		if l == "" {
			continue
		}
		idx.Add(unescape(l))
	}
	return idx
}

// EncodeCatalog renders every object of cat as a name line followed by its
// property block.
func EncodeCatalog(cat *types.Catalog) []string {
	var lines []string
	for _, name := range cat.Names() {
		obj, _ := cat.Get(name)
		lines = append(lines, escape(name, false))
		lines = append(lines, EncodeObject(obj)...)
	}
	return lines
}

// EncodeObject renders the property block of obj.
func EncodeObject(obj *types.Object) []string {
	props := obj.Properties()
	lines := make([]string, 0, len(props)+1)
	lines = append(lines, strconv.Itoa(len(props)))
	for _, p := range props {
		lines = append(lines, escape(p.Key.String(), true)+"="+escape(p.Value, false))
	}
	return lines
}

// DecodeCatalog parses lines produced by EncodeCatalog. Blank lines between
// objects are skipped. Errors wrap types.ErrMalformed and name the offending
// line (1-based).
func DecodeCatalog(lines []string) (*types.Catalog, error) {
	cat := types.NewCatalog()
	pos := 0
	for pos < len(lines) {
		if lines[pos] == "" {
			pos++
			continue
		}
		name := unescape(lines[pos])
		obj, next, err := decodeObject(lines, pos+1)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", name, err)
		}
		cat.Set(name, obj)
		pos = next
	}
	return cat, nil
}

// decodeObject reads a property block starting at lines[pos] and returns the
// object and the position just past the block.
func decodeObject(lines []string, pos int) (*types.Object, int, error) {
	if pos >= len(lines) {
		return nil, pos, fmt.Errorf("line %d: missing property count: %w", pos+1, types.ErrMalformed)
	}
	count, err := strconv.Atoi(strings.TrimSpace(lines[pos]))
	if err != nil || count < 0 {
		return nil, pos, fmt.Errorf("line %d: bad property count %q: %w", pos+1, lines[pos], types.ErrMalformed)
	}
	pos++
	if pos+count > len(lines) {
		return nil, pos, fmt.Errorf("line %d: block declares %d properties, %d lines left: %w",
			pos, count, len(lines)-pos, types.ErrMalformed)
	}

	obj := types.NewObject()
	for i := range count {
		line := lines[pos+i]
		key, value, ok := splitProperty(line)
		if !ok {
			return nil, pos + i, fmt.Errorf("line %d: no key separator in %q: %w", pos+i+1, line, types.ErrMalformed)
		}
		obj.Set(types.ParseKey(unescape(key)), unescape(value))
	}
	return obj, pos + count, nil
}

// splitProperty splits line at the first unescaped "=".
func splitProperty(line string) (key, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

func escape(s string, isKey bool) string {
	if !strings.ContainsAny(s, "\\\n\r=") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '=' && isKey:
			b.WriteString(`\=`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescape reverses escape. An unknown escape yields the escaped byte; a
// trailing lone backslash is kept.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
