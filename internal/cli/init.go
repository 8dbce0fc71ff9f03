package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/objcat/pkg/storage"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize objcat storage",
		Long: `Create the configuration and data directories, write a default config.yaml
if none exists, and initialize the configured storage backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.config.DataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}
			store, err := storage.Open(a.config)
			if err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			if err := store.Close(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "objcat initialized (backend %s, data dir %s)\n",
				a.config.Backend, a.config.DataDir)
			return nil
		},
	}
}
