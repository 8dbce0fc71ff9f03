// Package cli implements the objcat command-line interface: catalog and
// object editing from the shell, JSONC import, configuration inspection and
// the interactive editor.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/objcat/internal/importer"
	"github.com/mesh-intelligence/objcat/internal/logging"
	"github.com/mesh-intelligence/objcat/internal/paths"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (exit code 2). Errors not marked
// are user errors (exit code 1).
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// app holds the flag values and resolved settings of one command tree.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool

	configDir string
	config    types.Config
	log       *zap.Logger
}

// NewRootCmd creates the top-level "objcat" command with global flags and
// all subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "objcat",
		Short: "Edit catalogs of objects with prototype inheritance",
		Long: `objcat manages named catalogs of objects. An object is an ordered set of
properties and may name a parent object; a child starts with shadow copies
("*name") of its parent's properties and can be rescanned to follow later
changes to the parent.

Run "objcat tui" for the interactive editor.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newCatalogCmd(a))
	root.AddCommand(newObjectCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newTUICmd(a))

	return root
}

// load resolves directories, reads config.yaml and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	if cmd.Name() == versionCmdName {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	cfg := configFromViper(v)
	cfg.DataDir, err = paths.ResolveDataDir(a.flagDataDir, cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", paths.ConfigFile(configDir), err)
	}
	a.configDir = configDir
	a.config = cfg

	// The editor logs to a file so the screen is not disturbed.
	if cmd.Name() == tuiCmdName {
		return nil
	}
	log, err := logging.New(cfg.LogLevel, "stderr")
	if err != nil {
		return fmt.Errorf("config %s: %w", paths.ConfigFile(configDir), err)
	}
	a.log = log
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	cmd, err := root.ExecuteC()
	if cmd == nil {
		cmd = root
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.CommandPath(), err)
	}
	os.Exit(exitCode(err))
}

// userSentinels are the errors a user can fix by changing input.
var userSentinels = []error{
	types.ErrNotFound,
	types.ErrDuplicateObject,
	types.ErrCapacityExceeded,
	types.ErrInvalidName,
	types.ErrMalformed,
	importer.ErrInvalidDocument,
}

// isUserError reports whether err wraps one of userSentinels.
func isUserError(err error) bool {
	for _, s := range userSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// classify keeps user errors as they are and marks the rest as system
// failures.
func classify(err error) error {
	if err == nil || isUserError(err) {
		return err
	}
	return sysError(err)
}
