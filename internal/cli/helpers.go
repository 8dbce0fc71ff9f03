// Shared helpers for objcat CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/objcat/internal/session"
	"github.com/mesh-intelligence/objcat/internal/widgets"
	"github.com/mesh-intelligence/objcat/pkg/storage"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// workspace is an open store with a session over in-memory views.
type workspace struct {
	store     types.Store
	session   *session.Session
	inspector *widgets.Grid
}

// open opens the configured store and a session over it with an inspector
// of rows rows. The caller must call close.
func (a *app) open(rows int) (*workspace, error) {
	store, err := storage.Open(a.config)
	if err != nil {
		return nil, sysError(fmt.Errorf("open %s store: %w", a.config.Backend, err))
	}
	inspector := widgets.NewInspector(rows)
	s := session.New(store, session.Views{
		Inspector: inspector,
		Objects:   widgets.NewList(),
		Menu:      widgets.NewList(),
	}, a.log, a.config.IndexName)
	if err := s.LoadIndex(); err != nil {
		store.Close()
		return nil, classify(err)
	}
	return &workspace{store: store, session: s, inspector: inspector}, nil
}

// openCatalog opens a workspace and selects catalog. A catalog that is not
// stored yet starts empty unless mustExist is set.
func (a *app) openCatalog(catalog string, mustExist bool) (*workspace, error) {
	if catalog == "" {
		return nil, fmt.Errorf("catalog name: %w", types.ErrInvalidName)
	}
	ws, err := a.open(a.config.GridRows)
	if err != nil {
		return nil, err
	}
	if err := ws.session.SelectCatalog(catalog); err != nil {
		if mustExist || !errors.Is(err, types.ErrNotFound) {
			ws.close()
			return nil, classify(err)
		}
	}
	return ws, nil
}

func (ws *workspace) close() {
	ws.store.Close()
}

// object returns the named object of the selected catalog.
func (ws *workspace) object(name string) (*types.Object, error) {
	obj, ok := ws.session.Catalog().Get(name)
	if !ok {
		return nil, fmt.Errorf("object %s in %s: %w", name, ws.session.CatalogName(), types.ErrNotFound)
	}
	return obj, nil
}

// save writes the selected catalog back and indexes it.
func (ws *workspace) save() error {
	name := ws.session.CatalogName()
	if err := ws.session.SaveCatalog(name); err != nil {
		return sysError(err)
	}
	if err := ws.session.AddCatalogName(name); err != nil {
		return sysError(err)
	}
	return nil
}

// storedCatalogs lists the documents in the store other than the index.
func (ws *workspace) storedCatalogs(indexName string) ([]string, error) {
	lister, ok := ws.store.(types.Lister)
	if !ok {
		return nil, sysError(errors.New("store cannot list its documents"))
	}
	names, err := lister.Names()
	if err != nil {
		return nil, sysError(fmt.Errorf("listing stored catalogs: %w", err))
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != indexName {
			out = append(out, n)
		}
	}
	return out, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

// propertyJSON is the JSON form of one property.
type propertyJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func propertiesJSON(obj *types.Object) []propertyJSON {
	props := obj.Properties()
	out := make([]propertyJSON, 0, len(props))
	for _, p := range props {
		out = append(out, propertyJSON{Key: p.Key.String(), Value: p.Value})
	}
	return out
}
