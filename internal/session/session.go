// Package session holds the editing state of one interactive catalog
// session: the catalog index, the active catalog, and the views that show
// them. Operations validate their input, mutate the model, keep the views
// in step and persist through a types.TextStore.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/objcat/internal/codec"
	"github.com/mesh-intelligence/objcat/pkg/inherit"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// Views are the UI collaborators a Session keeps in step with the model.
type Views struct {
	Inspector types.Grid // property grid of the shown object
	Objects   types.List // object names of the active catalog
	Menu      types.List // catalog names of the index
}

// Session is the state of one editing session. It is not safe for
// concurrent use.
type Session struct {
	store     types.TextStore
	views     Views
	log       *zap.Logger
	indexName string

	index       *types.Index
	catalog     *types.Catalog
	catalogName string
}

// New returns a session reading and writing through store. indexName names
// the document holding the catalog index; a nil log discards output.
func New(store types.TextStore, views Views, log *zap.Logger, indexName string) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if indexName == "" {
		indexName = types.DefaultIndexName
	}
	return &Session{
		store:     store,
		views:     views,
		log:       log,
		indexName: indexName,
		index:     types.NewIndex(),
		catalog:   types.NewCatalog(),
	}
}

// Catalog returns the active catalog.
func (s *Session) Catalog() *types.Catalog { return s.catalog }

// Index returns the catalog index.
func (s *Session) Index() *types.Index { return s.index }

// ObjectNames returns the object names of the active catalog in order.
func (s *Session) ObjectNames() []string { return s.catalog.Names() }

// CatalogName returns the name of the last selected catalog, or "".
func (s *Session) CatalogName() string { return s.catalogName }

// LoadIndex reads the catalog index and refills the catalog menu. A missing
// index leaves the index empty and is not an error.
func (s *Session) LoadIndex() error {
	lines, err := s.store.ReadLines(s.indexName)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.log.Warn("catalog index not found", zap.String("index", s.indexName))
			s.index = types.NewIndex()
			s.views.Menu.Clear()
			return nil
		}
		return fmt.Errorf("loading index: %w", err)
	}
	s.index = codec.DecodeIndex(lines)
	s.views.Menu.Clear()
	for _, n := range s.index.Names() {
		s.views.Menu.AddItem(n)
	}
	s.log.Debug("index loaded", zap.Int("catalogs", s.index.Len()))
	return nil
}

// AddCatalogName appends name to the index, adds it to the catalog menu and
// persists the index. Empty and already indexed names are ignored; the
// index document's own name is rejected with ErrInvalidName.
func (s *Session) AddCatalogName(name string) error {
	if name == "" {
		return nil
	}
	if err := s.checkCatalogName(name); err != nil {
		return err
	}
	if !s.index.Add(name) {
		s.log.Debug("catalog already indexed", zap.String("catalog", name))
		return nil
	}
	s.views.Menu.AddItem(name)
	if err := s.store.WriteLines(s.indexName, codec.EncodeIndex(s.index)); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	s.log.Debug("catalog added", zap.String("catalog", name))
	return nil
}

// SaveCatalog writes the active catalog under name. Saving under the index
// document's name returns ErrInvalidName.
func (s *Session) SaveCatalog(name string) error {
	if name == "" {
		return nil
	}
	if err := s.checkCatalogName(name); err != nil {
		return err
	}
	if err := s.store.WriteLines(name, codec.EncodeCatalog(s.catalog)); err != nil {
		return fmt.Errorf("saving catalog %s: %w", name, err)
	}
	s.catalogName = name
	s.log.Debug("catalog saved", zap.String("catalog", name), zap.Int("objects", s.catalog.Len()))
	return nil
}

// SelectCatalog replaces the active catalog with the one stored under name.
// The catalog, object list and inspector are cleared first; when loading
// fails they stay empty and the error is returned.
func (s *Session) SelectCatalog(name string) error {
	if name == "" {
		return nil
	}
	if err := s.checkCatalogName(name); err != nil {
		return err
	}
	s.clearCatalog()
	s.catalogName = name

	lines, err := s.store.ReadLines(name)
	if err != nil {
		s.log.Warn("catalog not loaded", zap.String("catalog", name), zap.Error(err))
		return fmt.Errorf("loading catalog %s: %w", name, err)
	}
	cat, err := codec.DecodeCatalog(lines)
	if err != nil {
		s.log.Warn("catalog not decoded", zap.String("catalog", name), zap.Error(err))
		return fmt.Errorf("loading catalog %s: %w", name, err)
	}
	s.catalog = cat
	for _, n := range cat.Names() {
		s.views.Objects.AddItem(n)
	}
	s.log.Debug("catalog selected", zap.String("catalog", name), zap.Int("objects", cat.Len()))
	return nil
}

// checkCatalogName rejects the name of the index document, which shares
// the store with the catalogs.
func (s *Session) checkCatalogName(name string) error {
	if name == s.indexName {
		return fmt.Errorf("catalog %s is the index document: %w", name, types.ErrInvalidName)
	}
	return nil
}

func (s *Session) clearCatalog() {
	s.catalog = types.NewCatalog()
	s.views.Objects.Clear()
	s.views.Inspector.Clear()
}

// AddObject creates an object named name. When parentName names an object
// of the active catalog the new object records it as parent and shadows its
// properties; otherwise the object starts empty. Adding an existing name
// returns ErrDuplicateObject and changes nothing.
func (s *Session) AddObject(name, parentName string) error {
	if name == "" {
		return nil
	}
	if s.catalog.Has(name) {
		return fmt.Errorf("adding %s: %w", name, types.ErrDuplicateObject)
	}

	obj := types.NewObject()
	if parent, ok := s.catalog.Get(parentName); ok && parentName != "" {
		obj.SetParent(parentName)
		for _, p := range inherit.DeriveChild(parent).Properties() {
			obj.Set(p.Key, p.Value)
		}
	}
	s.catalog.Set(name, obj)
	s.views.Objects.AddItem(name)
	s.log.Debug("object added",
		zap.String("object", name),
		zap.String("parent", parentName),
		zap.Int("properties", obj.Len()))
	return nil
}

// DeleteObject removes name from the catalog and the object list and clears
// the inspector. Missing names are ignored.
func (s *Session) DeleteObject(name string) error {
	if name == "" || !s.catalog.Remove(name) {
		return nil
	}
	if i := indexOf(s.views.Objects, name); i >= 0 {
		s.views.Objects.RemoveItem(i)
	}
	s.views.Inspector.Clear()
	s.log.Debug("object deleted", zap.String("object", name))
	return nil
}

// UpdateObject replaces the properties of name with the inspector contents,
// creating the object when absent. Rows with an empty name or the free-row
// marker are skipped.
func (s *Session) UpdateObject(name string) error {
	if name == "" {
		return nil
	}
	obj, ok := s.catalog.Get(name)
	if !ok {
		obj = types.NewObject()
		s.catalog.Set(name, obj)
		s.views.Objects.AddItem(name)
	}
	obj.Clear()
	g := s.views.Inspector
	for row := 0; row < g.RowCount(); row++ {
		key := g.Cell(types.NameColumn, row)
		if key == "" || key == types.FreeRowName {
			continue
		}
		obj.Set(types.ParseKey(key), g.Cell(types.ValueColumn, row))
	}
	s.log.Debug("object updated", zap.String("object", name), zap.Int("properties", obj.Len()))
	return nil
}

// MergeProperties sets each of props on the existing object name. Keys
// already present keep their position.
func (s *Session) MergeProperties(name string, props []types.Property) error {
	obj, ok := s.catalog.Get(name)
	if !ok {
		return fmt.Errorf("object %s: %w", name, types.ErrNotFound)
	}
	for _, p := range props {
		obj.Set(p.Key, p.Value)
	}
	return nil
}

// RescanObject re-synchronizes name with its parent and shows it.
func (s *Session) RescanObject(name string) error {
	if name == "" {
		return nil
	}
	obj, ok := s.catalog.Get(name)
	if !ok {
		return fmt.Errorf("rescanning %s: %w", name, types.ErrNotFound)
	}
	parent := s.catalog.ParentOf(obj)
	if parent == nil {
		s.log.Debug("rescan without parent", zap.String("object", name))
	}
	inherit.Rescan(obj, parent)
	return s.ShowObject(name)
}

// ShowObject writes the properties of name into the inspector, one per row.
// It returns ErrCapacityExceeded without touching the inspector when the
// object has more properties than the inspector has rows.
func (s *Session) ShowObject(name string) error {
	obj, ok := s.catalog.Get(name)
	if !ok {
		return fmt.Errorf("showing %s: %w", name, types.ErrNotFound)
	}
	g := s.views.Inspector
	if obj.Len() > g.RowCount() {
		s.log.Warn("object does not fit inspector",
			zap.String("object", name),
			zap.Int("properties", obj.Len()),
			zap.Int("rows", g.RowCount()))
		return fmt.Errorf("showing %s (%d properties, %d rows): %w",
			name, obj.Len(), g.RowCount(), types.ErrCapacityExceeded)
	}
	g.Clear()
	for row, p := range obj.Properties() {
		g.SetCell(types.NameColumn, row, p.Key.String())
		g.SetCell(types.ValueColumn, row, p.Value)
	}
	return nil
}

func indexOf(l types.List, text string) int {
	for i, it := range l.Items() {
		if it == text {
			return i
		}
	}
	return -1
}
