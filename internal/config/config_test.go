package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Run from an empty directory so no stray config.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "kitchen.db", cfg.Server.DBPath)
	assert.Equal(t, "店长", cfg.Game.PlayerName)
	assert.Zero(t, cfg.Game.Seed)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  addr: ":9090"
  db_path: "/tmp/km-test.db"
game:
  seed: 42
  player_name: "阿强"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/km-test.db", cfg.Server.DBPath)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "阿强", cfg.Game.PlayerName)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0644))
	t.Setenv("KM_SERVER_ADDR", ":7070")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  seed: -5\n"), 0644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfigRejectsAddrWithoutPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \"localhost\"\n"), 0644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}
