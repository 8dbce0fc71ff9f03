package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

type testEnv struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T, configYAML string) testEnv {
	t.Helper()
	t.Setenv(envLogLevel, "")
	env := testEnv{
		configDir: filepath.Join(t.TempDir(), "config"),
		dataDir:   filepath.Join(t.TempDir(), "data"),
	}
	if configYAML != "" {
		require.NoError(t, os.MkdirAll(env.configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte(configYAML), 0o644))
	}
	return env
}

func (env testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", env.configDir, "--data-dir", env.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (env testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := env.run(t, args...)
	require.NoError(t, err, "objcat %v: %s", args, out)
	return out
}

func TestVersion(t *testing.T) {
	env := newEnv(t, "")
	assert.Equal(t, "objcat "+Version+"\n", env.mustRun(t, "version"))
	_, err := os.Stat(env.configDir)
	assert.True(t, os.IsNotExist(err), "version must not create the config dir")
}

func TestInit(t *testing.T) {
	env := newEnv(t, "")

	out := env.mustRun(t, "init")
	assert.Contains(t, out, "objcat initialized (backend file")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))

	info, err := os.Stat(env.dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	env.mustRun(t, "init")
}

func TestConfigShow(t *testing.T) {
	env := newEnv(t, "backend: sqlite\ngrid_rows: 8\n")

	out := env.mustRun(t, "config", "show")
	assert.Contains(t, out, "backend: sqlite")
	assert.Contains(t, out, "grid_rows: 8")
	assert.Contains(t, out, "index_name: Catalogs")
	assert.Contains(t, out, "log_level: warn")
	assert.Contains(t, out, "config_dir: "+env.configDir)

	out = env.mustRun(t, "--json", "config", "show")
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sqlite", got["backend"])
	assert.Equal(t, env.dataDir, got["data_dir"])
}

func TestConfigLogLevelFromEnv(t *testing.T) {
	env := newEnv(t, "")
	t.Setenv(envLogLevel, "error")

	out := env.mustRun(t, "config", "show")
	assert.Contains(t, out, "log_level: error")
}

func TestConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown backend", "backend: postgres\n", types.ErrBackendUnknown},
		{"bad grid rows", "grid_rows: 0\n", types.ErrGridRowsInvalid},
		{"empty index name", "index_name: \"\"\n", types.ErrIndexNameEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, tt.yaml)
			_, err := env.run(t, "catalog", "list")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestCatalogCommands(t *testing.T) {
	env := newEnv(t, "")

	assert.Equal(t, "", env.mustRun(t, "catalog", "list"))
	assert.Equal(t, "[]\n", env.mustRun(t, "--json", "catalog", "list"))

	assert.Equal(t, "added catalog monsters\n", env.mustRun(t, "catalog", "add", "monsters"))
	env.mustRun(t, "catalog", "add", "items")
	assert.Equal(t, "catalog monsters already indexed\n", env.mustRun(t, "catalog", "add", "monsters"))

	assert.Equal(t, "monsters\nitems\n", env.mustRun(t, "catalog", "list"))

	var names []string
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "--json", "catalog", "list")), &names))
	assert.Equal(t, []string{"monsters", "items"}, names)

	// Indexed names are not stored catalogs until something is saved.
	assert.Equal(t, "[]\n", env.mustRun(t, "--json", "catalog", "list", "--stored"))
	env.mustRun(t, "object", "add", "spells", "fireball")
	assert.Equal(t, "spells\n", env.mustRun(t, "catalog", "list", "--stored"))
}

// objectWorkflow runs the npc/goblin walkthrough against the configured
// backend.
func objectWorkflow(t *testing.T, env testEnv) {
	env.mustRun(t, "object", "add", "monsters", "npc")
	assert.Equal(t, "updated npc (1 properties)\n", env.mustRun(t, "object", "set", "monsters", "npc", "speed=5"))

	assert.Equal(t, "added goblin (2 properties)\n",
		env.mustRun(t, "object", "add", "monsters", "goblin", "--parent", "npc"))
	assert.Equal(t, "parent=npc\n*speed=5\n", env.mustRun(t, "object", "show", "monsters", "goblin"))

	env.mustRun(t, "object", "set", "monsters", "npc", "speed=7", "health=10")
	assert.Equal(t, "parent=npc\n*speed=7\n*health=10\n", env.mustRun(t, "object", "rescan", "monsters", "goblin"))

	env.mustRun(t, "object", "set", "monsters", "npc", "--unset", "speed")
	assert.Equal(t, "parent=npc\n*health=10\n", env.mustRun(t, "object", "rescan", "monsters", "goblin"))

	env.mustRun(t, "object", "set", "monsters", "goblin", "health=3")
	assert.Equal(t, "parent=npc\nhealth=3\n", env.mustRun(t, "object", "show", "monsters", "goblin", "--flat"))

	assert.Equal(t, "npc\ngoblin\n", env.mustRun(t, "object", "list", "monsters"))
	assert.Equal(t, "monsters\n", env.mustRun(t, "catalog", "list"))

	_, err := env.run(t, "object", "add", "monsters", "npc")
	assert.ErrorIs(t, err, types.ErrDuplicateObject)
	assert.Equal(t, exitUserError, exitCode(err))

	assert.Equal(t, "deleted npc\n", env.mustRun(t, "object", "delete", "monsters", "npc"))
	assert.Equal(t, "goblin\n", env.mustRun(t, "object", "list", "monsters"))

	// The dangling parent leaves goblin untouched.
	assert.Equal(t, "parent=npc\n*health=10\nhealth=3\n", env.mustRun(t, "object", "rescan", "monsters", "goblin"))

	// Values keep their exact bytes, valid UTF-8 or not.
	env.mustRun(t, "object", "set", "monsters", "goblin", "name=\xffgob\xc3")
	assert.Equal(t, "parent=npc\n*health=10\nhealth=3\nname=\xffgob\xc3\n",
		env.mustRun(t, "object", "show", "monsters", "goblin"))

	// A local property named like the unused-row marker survives edits.
	env.mustRun(t, "object", "set", "monsters", "goblin", `\free=yes`)
	env.mustRun(t, "object", "set", "monsters", "goblin", "health=4")
	assert.Equal(t, "parent=npc\n*health=10\nhealth=4\nname=\xffgob\xc3\n\\free=yes\n",
		env.mustRun(t, "object", "show", "monsters", "goblin"))

	assert.Equal(t, "monsters\n", env.mustRun(t, "catalog", "list", "--stored"))
}

func TestObjectWorkflowBackends(t *testing.T) {
	for _, backend := range []string{types.BackendFile, types.BackendSQLite, types.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			env := newEnv(t, "backend: "+backend+"\n")
			objectWorkflow(t, env)
		})
	}
}

func TestObjectShowJSON(t *testing.T) {
	env := newEnv(t, "")
	env.mustRun(t, "object", "set", "monsters", "npc", "speed=5", `\*odd=1`, "*armor=2")

	var got objectJSON
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "--json", "object", "show", "monsters", "npc")), &got))
	assert.Equal(t, objectJSON{
		Catalog: "monsters",
		Name:    "npc",
		Properties: []propertyJSON{
			{Key: "speed", Value: "5"},
			{Key: `\*odd`, Value: "1"},
			{Key: "*armor", Value: "2"},
		},
	}, got)
}

func TestObjectErrors(t *testing.T) {
	env := newEnv(t, "grid_rows: 2\n")

	_, err := env.run(t, "object", "list", "spells")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))

	env.mustRun(t, "object", "add", "monsters", "npc")
	_, err = env.run(t, "object", "show", "monsters", "ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = env.run(t, "object", "delete", "monsters", "ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = env.run(t, "object", "set", "monsters", "npc", "a=1", "b=2", "c=3")
	assert.ErrorIs(t, err, types.ErrCapacityExceeded)

	_, err = env.run(t, "object", "set", "monsters", "npc", "novalue")
	assert.Error(t, err)
	_, err = env.run(t, "object", "set", "monsters", "npc", "free=1")
	assert.Error(t, err)

	_, err = env.run(t, "object", "show", "monsters")
	assert.Error(t, err)

	// The index document name cannot be used as a catalog.
	_, err = env.run(t, "object", "add", "Catalogs", "npc")
	assert.ErrorIs(t, err, types.ErrInvalidName)
	assert.Equal(t, exitUserError, exitCode(err))
	_, err = env.run(t, "catalog", "add", "Catalogs")
	assert.ErrorIs(t, err, types.ErrInvalidName)
	assert.Equal(t, "monsters\n", env.mustRun(t, "catalog", "list"))
}

func TestObjectAddMissingParent(t *testing.T) {
	env := newEnv(t, "")
	assert.Equal(t, "added orphan (0 properties)\n",
		env.mustRun(t, "object", "add", "monsters", "orphan", "--parent", "ghost"))
}

func TestImport(t *testing.T) {
	env := newEnv(t, "")
	file := filepath.Join(t.TempDir(), "monsters.jsonc")
	require.NoError(t, os.WriteFile(file, []byte(`{
  // prototypes first
  "catalog": "monsters",
  "objects": [
    {"name": "npc", "properties": {"speed": 5}},
    {"name": "goblin", "parent": "npc", "properties": {"armor": "2"}},
  ],
}`), 0o644))

	assert.Equal(t, "imported monsters: 2 added, 0 updated\n", env.mustRun(t, "import", file))
	assert.Equal(t, "parent=npc\n*speed=5\narmor=2\n", env.mustRun(t, "object", "show", "monsters", "goblin"))
	assert.Equal(t, "monsters\n", env.mustRun(t, "catalog", "list"))

	assert.Equal(t, "imported monsters: 0 added, 2 updated\n", env.mustRun(t, "import", file))

	bad := filepath.Join(t.TempDir(), "bad.jsonc")
	require.NoError(t, os.WriteFile(bad, []byte(`{"objects": []}`), 0o644))
	_, err := env.run(t, "import", bad)
	assert.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("bad args")))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk"))))
	assert.Equal(t, exitUserError, exitCode(classify(types.ErrNotFound)))
	assert.Equal(t, exitSysError, exitCode(classify(errors.New("io"))))
	assert.Nil(t, sysError(nil))
}
