package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/objcat/internal/logging"
	"github.com/mesh-intelligence/objcat/internal/paths"
	"github.com/mesh-intelligence/objcat/internal/tui"
	"github.com/mesh-intelligence/objcat/pkg/storage"
)

const tuiCmdName = "tui"

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   tuiCmdName,
		Short: "Start the interactive catalog editor",
		Long: `Start the interactive editor. Tab moves between the catalog field, the
catalog menu, the object fields, the object list and the inspector. F1-F6
add a catalog, save the catalog, add, delete and update an object, and
rescan an object's parent. Logs go to objcat.log in the config directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(a.config.LogLevel, paths.LogFile(a.configDir))
			if err != nil {
				return err
			}
			a.log = log

			store, err := storage.Open(a.config)
			if err != nil {
				return sysError(fmt.Errorf("open %s store: %w", a.config.Backend, err))
			}
			defer store.Close()

			if err := tui.Run(store, a.config, log); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
}
