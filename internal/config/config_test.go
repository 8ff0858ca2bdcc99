package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinyboards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
dsn: "dbname=boards"
debug: true
levels_file: levels.yaml
idle_after: 2h
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr())
	assert.Equal(t, "dbname=boards", cfg.DatabaseDSN())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "levels.yaml", cfg.LevelsFile)
	assert.Equal(t, 2*time.Hour, cfg.IdleTimeout())
	assert.Equal(t, defaultSweep, cfg.SweepInterval())
}

func TestDefaultsAndEnv(t *testing.T) {
	t.Setenv("TINYBOARDS_CONFIG", "")
	t.Setenv("TINYBOARDS_ADDR", "")
	t.Setenv("TINYBOARDS_DSN", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultAddr, cfg.ListenAddr())
	assert.Empty(t, cfg.DatabaseDSN())
	assert.Equal(t, defaultIdleAfter, cfg.IdleTimeout())

	t.Setenv("TINYBOARDS_ADDR", ":7000")
	assert.Equal(t, ":7000", cfg.ListenAddr())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
