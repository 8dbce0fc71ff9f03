package session

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

// Button ids.
const (
	ButtonAddCatalog   = "add_catalog"
	ButtonSaveCatalog  = "save_catalog"
	ButtonAddObject    = "add_object"
	ButtonDeleteObject = "delete_object"
	ButtonUpdateObject = "update_object"
	ButtonRescanParent = "rescan_parent"
)

// List ids.
const (
	ListCatalogMenu    = "catalog_menu"
	ListCatalogObjects = "catalog_objects"
)

// ErrUnknownComponent is returned for events from an unknown component id.
var ErrUnknownComponent = errors.New("unknown component")

// Fields are the text entries the controller reads its arguments from.
type Fields struct {
	CatalogName  types.TextField
	ObjectName   types.TextField
	ObjectParent types.TextField
}

// Controller maps UI events onto Session operations.
type Controller struct {
	session *Session
	fields  Fields
}

// NewController returns a controller driving s with fields.
func NewController(s *Session, fields Fields) *Controller {
	return &Controller{session: s, fields: fields}
}

// Session returns the controlled session.
func (c *Controller) Session() *Session { return c.session }

// Fields returns the controller's text fields.
func (c *Controller) Fields() Fields { return c.fields }

// Init loads the catalog index into the catalog menu.
func (c *Controller) Init() error {
	return c.session.LoadIndex()
}

// OnButtonClick runs the operation bound to button id.
func (c *Controller) OnButtonClick(id string) error {
	catalog := c.fields.CatalogName.Text()
	object := c.fields.ObjectName.Text()

	switch id {
	case ButtonAddCatalog:
		if err := c.session.AddCatalogName(catalog); err != nil {
			return err
		}
		if catalog != "" {
			c.fields.CatalogName.SetText("")
		}
		return nil
	case ButtonSaveCatalog:
		return c.session.SaveCatalog(catalog)
	case ButtonAddObject:
		return c.session.AddObject(object, c.fields.ObjectParent.Text())
	case ButtonDeleteObject:
		return c.session.DeleteObject(object)
	case ButtonUpdateObject:
		return c.session.UpdateObject(object)
	case ButtonRescanParent:
		return c.session.RescanObject(object)
	default:
		return fmt.Errorf("button %q: %w", id, ErrUnknownComponent)
	}
}

// OnListClick handles a click on the item text of list id.
func (c *Controller) OnListClick(id, text string) error {
	switch id {
	case ListCatalogMenu:
		c.fields.CatalogName.SetText(text)
		return c.session.SelectCatalog(text)
	case ListCatalogObjects:
		if !c.session.Catalog().Has(text) {
			return nil
		}
		if err := c.session.ShowObject(text); err != nil {
			return err
		}
		c.fields.ObjectName.SetText(text)
		c.fields.ObjectParent.SetText("")
		return nil
	default:
		return fmt.Errorf("list %q: %w", id, ErrUnknownComponent)
	}
}
