package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/objcat/internal/importer"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a catalog from a JSONC file",
		Long: `Import objects from a JSON-with-comments file into the catalog it names.
Objects are added in file order, so list parents before their children.
Objects that already exist receive the file's properties on top of their
own. The catalog is saved and added to the index.

Example file:
  {
    "catalog": "monsters",
    "objects": [
      {"name": "npc", "properties": {"speed": 5}},
      {"name": "goblin", "parent": "npc", "properties": {"armor": 2}},
    ],
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}
			ws, err := a.open(a.config.GridRows)
			if err != nil {
				return err
			}
			defer ws.close()

			res, err := importer.Apply(ws.session, doc)
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d added, %d updated\n",
				doc.Catalog, res.Added, res.Updated)
			return nil
		},
	}
}
