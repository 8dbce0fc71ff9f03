package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the catalog index",
	}
	cmd.AddCommand(newCatalogAddCmd(a), newCatalogListCmd(a))
	return cmd
}

func newCatalogAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a catalog name to the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(a.config.GridRows)
			if err != nil {
				return err
			}
			defer ws.close()

			name := args[0]
			if ws.session.Index().Has(name) {
				fmt.Fprintf(cmd.OutOrStdout(), "catalog %s already indexed\n", name)
				return nil
			}
			if err := ws.session.AddCatalogName(name); err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added catalog %s\n", name)
			return nil
		},
	}
}

func newCatalogListCmd(a *app) *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the indexed catalogs",
		Long: `List the catalog names in the index, in index order. With --stored, list
the catalogs actually present in the store instead, sorted by name,
including catalogs that were saved but never indexed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(a.config.GridRows)
			if err != nil {
				return err
			}
			defer ws.close()

			names := ws.session.Index().Names()
			if stored {
				if names, err = ws.storedCatalogs(a.config.IndexName); err != nil {
					return err
				}
			}
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
	cmd.Flags().BoolVar(&stored, "stored", false, "list catalogs present in the store")
	return cmd
}
