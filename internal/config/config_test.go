package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkers.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Empty(t, cfg.Storage.Path)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
api {
  port       = 9000
  dev        = true
  rate_limit = 50
}

storage {
  path = "/tmp/checkers.db"
  wal  = true
}

engine {
  workers       = 4
  think_time_ms = 300
  seed          = 99
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.API.Host, "unset attributes keep their default")
	assert.Equal(t, 9000, cfg.API.Port)
	assert.True(t, cfg.API.Dev)
	assert.Equal(t, 50, cfg.API.RateLimit)
	assert.Equal(t, "/tmp/checkers.db", cfg.Storage.Path)
	assert.True(t, cfg.Storage.WAL)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, 300, cfg.Engine.ThinkTimeMs)
	assert.Equal(t, int64(99), cfg.Engine.Seed)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "api {"},
		{"unknown attribute", "api {\n  colour = \"red\"\n}\n"},
		{"wrong type", "engine {\n  workers = \"many\"\n}\n"},
		{"out of range", "api {\n  port = 70000\n}\n"},
		{"zero workers", "engine {\n  workers = 0\n}\n"},
		{"zero rate limit", "api {\n  rate_limit = 0\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestLoadFileEnvironment(t *testing.T) {
	t.Setenv("CHECKERS_TEST_DB", "/var/lib/checkers/games.db")
	path := writeConfig(t, "storage {\n  path = env.CHECKERS_TEST_DB\n}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/checkers/games.db", cfg.Storage.Path)

	_, err = Load(writeConfig(t, "storage {\n  path = env.CHECKERS_UNSET_VARIABLE_X\n}\n"))
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "api {\n  port = 9000\n  host = \"0.0.0.0\"\n}\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-api-port", "7000", "-seed", "5"}))

	cfg, err := Resolve(fs, f)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.API.Port, "explicit flag wins")
	assert.Equal(t, "0.0.0.0", cfg.API.Host, "file value survives an unset flag")
	assert.Equal(t, int64(5), cfg.Engine.Seed)
	assert.Equal(t, 2, cfg.Engine.Workers)
}
