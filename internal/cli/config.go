// Config loading for the objcat CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/objcat/internal/paths"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyIndexName = "index_name"
	cfgKeyGridRows  = "grid_rows"
	cfgKeyLogLevel  = "log_level"

	envLogLevel = "OBJCAT_LOG_LEVEL"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# objcat configuration

# Storage backend: file, sqlite or badger
backend: file

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Name of the document listing the catalogs
index_name: Catalogs

# Rows in the property inspector
grid_rows: 32

# debug, info, warn or error (OBJCAT_LOG_LEVEL overrides)
log_level: warn
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.DefaultBackend)
	v.SetDefault(cfgKeyIndexName, types.DefaultIndexName)
	v.SetDefault(cfgKeyGridRows, types.DefaultGridRows)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml
// already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// configFromViper builds a Config from the loaded keys. DataDir holds the
// raw data_dir value; the caller resolves it.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   v.GetString(cfgKeyDataDir),
		IndexName: v.GetString(cfgKeyIndexName),
		GridRows:  v.GetInt(cfgKeyGridRows),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
}

// effectiveConfig is what "config show" prints.
type effectiveConfig struct {
	ConfigDir    string `json:"config_dir" yaml:"config_dir"`
	types.Config `yaml:",inline"`
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eff := effectiveConfig{ConfigDir: a.configDir, Config: a.config}
			if a.flagJSON {
				return writeJSON(cmd, eff)
			}
			data, err := yaml.Marshal(&eff)
			if err != nil {
				return sysError(fmt.Errorf("marshal config: %w", err))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
