package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/objcat/pkg/inherit"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

func newObjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Edit the objects of a catalog",
	}
	cmd.AddCommand(
		newObjectAddCmd(a),
		newObjectDeleteCmd(a),
		newObjectSetCmd(a),
		newObjectRescanCmd(a),
		newObjectShowCmd(a),
		newObjectListCmd(a),
	)
	return cmd
}

func newObjectAddCmd(a *app) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "add <catalog> <name>",
		Short: "Add an object, optionally deriving it from a parent",
		Long: `Add an object to a catalog. With --parent naming an object of the same
catalog, the new object records the parent and starts with shadow copies
("*name") of the parent's properties. A parent that does not exist is
recorded nowhere and the object starts empty.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], false)
			if err != nil {
				return err
			}
			defer ws.close()

			name := args[1]
			if parent != "" && !ws.session.Catalog().Has(parent) {
				a.log.Warn("parent not found, object starts empty",
					zap.String("object", name), zap.String("parent", parent))
			}
			if err := ws.session.AddObject(name, parent); err != nil {
				return classify(err)
			}
			if err := ws.save(); err != nil {
				return err
			}
			obj, _ := ws.session.Catalog().Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%d properties)\n", name, obj.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "parent object to derive from")
	return cmd
}

func newObjectDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <catalog> <name>",
		Short: "Delete an object",
		Long:  "Delete an object. Children naming it as parent keep the reference.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], true)
			if err != nil {
				return err
			}
			defer ws.close()

			name := args[1]
			if _, err := ws.object(name); err != nil {
				return err
			}
			if err := ws.session.DeleteObject(name); err != nil {
				return classify(err)
			}
			if err := ws.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", name)
			return nil
		},
	}
}

func newObjectSetCmd(a *app) *cobra.Command {
	var unset []string
	cmd := &cobra.Command{
		Use:   "set <catalog> <name> [key=value...]",
		Short: "Set or remove properties of an object",
		Long: `Set properties of an object, creating it when absent. Keys use the
inspector text form: "*speed" is a shadow property, "\*speed" a local
property whose name starts with "*". Existing keys keep their position.

Example:
  objcat object set monsters npc speed=5 health=10
  objcat object set monsters goblin '*speed=3' --unset armor`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], false)
			if err != nil {
				return err
			}
			defer ws.close()

			name := args[1]
			assignments, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}

			if ws.session.Catalog().Has(name) {
				if err := ws.session.ShowObject(name); err != nil {
					return classify(err)
				}
			} else {
				ws.inspector.Clear()
			}
			for _, k := range unset {
				if row := findRow(ws.inspector, k); row >= 0 {
					ws.inspector.SetCell(types.NameColumn, row, "")
					ws.inspector.SetCell(types.ValueColumn, row, "")
				}
			}
			for _, as := range assignments {
				row := findRow(ws.inspector, as.key)
				if row < 0 {
					row = findRow(ws.inspector, "")
				}
				if row < 0 {
					return fmt.Errorf("setting %s on %s (%d rows): %w",
						as.key, name, ws.inspector.RowCount(), types.ErrCapacityExceeded)
				}
				ws.inspector.SetCell(types.NameColumn, row, as.key)
				ws.inspector.SetCell(types.ValueColumn, row, as.value)
			}

			if err := ws.session.UpdateObject(name); err != nil {
				return classify(err)
			}
			if err := ws.save(); err != nil {
				return err
			}
			obj, _ := ws.session.Catalog().Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%d properties)\n", name, obj.Len())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&unset, "unset", nil, "remove the property with this key (repeatable)")
	return cmd
}

type assignment struct {
	key   string
	value string
}

// parseAssignments splits key=value arguments at the first "=".
func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q (expected key=value)", arg)
		}
		if key == types.FreeRowName {
			return nil, fmt.Errorf("invalid property %q: %q marks an unused row", arg, types.FreeRowName)
		}
		out = append(out, assignment{key: key, value: value})
	}
	return out, nil
}

// findRow returns the first inspector row whose name cell is name, or -1.
func findRow(g types.Grid, name string) int {
	for row := 0; row < g.RowCount(); row++ {
		if g.Cell(types.NameColumn, row) == name {
			return row
		}
	}
	return -1
}

func newObjectRescanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rescan <catalog> <name>",
		Short: "Re-synchronize an object with its parent",
		Long: `Drop shadow properties the parent no longer defines, refresh the others
from the parent's current values, and add shadows for new parent
properties. Only the immediate parent is consulted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], true)
			if err != nil {
				return err
			}
			defer ws.close()

			name := args[1]
			if err := ws.session.RescanObject(name); err != nil {
				if !errors.Is(err, types.ErrCapacityExceeded) {
					return classify(err)
				}
				a.log.Warn("rescanned object does not fit the inspector", zap.Error(err))
			}
			if err := ws.save(); err != nil {
				return err
			}
			obj, err := ws.object(name)
			if err != nil {
				return err
			}
			return a.printObject(cmd, ws.session.CatalogName(), name, obj)
		},
	}
}

func newObjectShowCmd(a *app) *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:   "show <catalog> <name>",
		Short: "Print the properties of an object",
		Long: `Print the properties of an object, one key=value per line, in order.
With --flat every shadow property is shown as a local property; when a
name occurs twice the later value wins.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], true)
			if err != nil {
				return err
			}
			defer ws.close()

			obj, err := ws.object(args[1])
			if err != nil {
				return err
			}
			if flat {
				obj = inherit.Flatten(obj)
			}
			return a.printObject(cmd, args[0], args[1], obj)
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "merge shadow properties into local ones")
	return cmd
}

// objectJSON is the JSON form of an object.
type objectJSON struct {
	Catalog    string         `json:"catalog"`
	Name       string         `json:"name"`
	Properties []propertyJSON `json:"properties"`
}

func (a *app) printObject(cmd *cobra.Command, catalog, name string, obj *types.Object) error {
	if a.flagJSON {
		return writeJSON(cmd, objectJSON{Catalog: catalog, Name: name, Properties: propertiesJSON(obj)})
	}
	for _, p := range obj.Properties() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", p.Key, p.Value)
	}
	return nil
}

func newObjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <catalog>",
		Short: "List the objects of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openCatalog(args[0], true)
			if err != nil {
				return err
			}
			defer ws.close()

			names := ws.session.ObjectNames()
			if a.flagJSON {
				if names == nil {
					names = []string{}
				}
				return writeJSON(cmd, names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
