// Package importer loads catalog definitions authored as JSONC (JSON with
// comments and trailing commas) into a session.
//
// A document names one catalog and lists its objects in order:
//
//	{
//	  "catalog": "monsters",
//	  "objects": [
//	    {"name": "npc", "properties": {"speed": 5}},
//	    // children after their parents
//	    {"name": "goblin", "parent": "npc", "properties": {"armor": "2"}},
//	  ],
//	}
//
// Objects are added through the session, so a child derives the shadow
// properties of a parent listed before it. Property names use the same text
// form as the inspector: "*speed" is a shadow key, "\*speed" a local key
// starting with "*".
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/mesh-intelligence/objcat/internal/session"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// ErrInvalidDocument is returned for structurally invalid import documents.
var ErrInvalidDocument = errors.New("invalid import document")

// Document is a parsed import file.
type Document struct {
	Catalog string      `json:"catalog"`
	Objects []ObjectDef `json:"objects"`
}

// ObjectDef defines one object of a Document.
type ObjectDef struct {
	Name       string     `json:"name"`
	Parent     string     `json:"parent,omitempty"`
	Properties Properties `json:"properties,omitempty"`
}

// Properties is a JSON object decoded in document order. Values may be
// strings, numbers, booleans or null; null becomes "".
type Properties []types.Property

// UnmarshalJSON decodes a JSON object keeping its key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*p = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be an object: %w", ErrInvalidDocument)
	}

	var out Properties
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("property name %v: %w", tok, ErrInvalidDocument)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		value, err := scalar(raw)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		out = append(out, types.Property{Key: types.ParseKey(name), Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

// scalar renders a JSON scalar as property text.
func scalar(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("nested values are not supported: %w", ErrInvalidDocument)
	}
	if string(raw) == "null" {
		return "", nil
	}
	return string(raw), nil
}

// Parse strips JSONC comments and trailing commas from data, then decodes
// and validates the document.
func Parse(data []byte) (*Document, error) {
	stripped := jsonc.ToJSON(data)

	var doc Document
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile reads and parses a JSONC import file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks that the document names a catalog and that every object
// has a unique, non-empty name.
func (d *Document) Validate() error {
	if d.Catalog == "" {
		return fmt.Errorf("missing catalog name: %w", ErrInvalidDocument)
	}
	seen := make(map[string]bool, len(d.Objects))
	for i, o := range d.Objects {
		if o.Name == "" {
			return fmt.Errorf("object %d: missing name: %w", i, ErrInvalidDocument)
		}
		if seen[o.Name] {
			return fmt.Errorf("object %q listed twice: %w", o.Name, ErrInvalidDocument)
		}
		seen[o.Name] = true
	}
	return nil
}

// Result counts what Apply changed.
type Result struct {
	Added   int
	Updated int
}

// Apply loads the document's catalog into s (starting empty when it is not
// stored yet), adds or updates each object, saves the catalog and adds it
// to the index. Objects that already exist keep their properties and
// receive the document's properties on top.
func Apply(s *session.Session, doc *Document) (Result, error) {
	var res Result
	if err := doc.Validate(); err != nil {
		return res, err
	}
	if err := s.SelectCatalog(doc.Catalog); err != nil && !errors.Is(err, types.ErrNotFound) {
		return res, err
	}

	for _, o := range doc.Objects {
		if s.Catalog().Has(o.Name) {
			res.Updated++
		} else {
			if err := s.AddObject(o.Name, o.Parent); err != nil {
				return res, err
			}
			res.Added++
		}
		if err := s.MergeProperties(o.Name, o.Properties); err != nil {
			return res, err
		}
	}

	if err := s.SaveCatalog(doc.Catalog); err != nil {
		return res, err
	}
	if err := s.AddCatalogName(doc.Catalog); err != nil {
		return res, err
	}
	return res, nil
}
