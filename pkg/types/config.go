package types

import "errors"

// Config holds backend selection and session parameters.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	IndexName string `json:"index_name" yaml:"index_name"`
	GridRows  int    `json:"grid_rows" yaml:"grid_rows"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Defaults applied when config.yaml leaves a key unset.
const (
	DefaultBackend   = BackendFile
	DefaultIndexName = "Catalogs"
	DefaultGridRows  = 32
	DefaultLogLevel  = "warn"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrIndexNameEmpty  = errors.New("index name must not be empty")
	ErrGridRowsInvalid = errors.New("grid rows must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendBadger: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.IndexName == "" {
		return ErrIndexNameEmpty
	}
	if c.GridRows <= 0 {
		return ErrGridRowsInvalid
	}
	return nil
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.IndexName == "" {
		c.IndexName = DefaultIndexName
	}
	if c.GridRows == 0 {
		c.GridRows = DefaultGridRows
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}
