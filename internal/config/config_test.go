package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Home)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, "name", cfg.Sort)
	assert.False(t, cfg.Junk.Extended)
	assert.Len(t, cfg.JunkLocations(), len(scanner.DefaultJunkLocations()))
	assert.Equal(t, scanner.DefaultAppDirs(cfg.Home), cfg.ApplicationDirs())
}

func TestLoad_File(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `home: ` + home + `
app_dirs:
  - ~/Apps
  - /opt/Apps
workers: 3
sort: size
junk:
  extended: true
  locations:
    - name: Scratch
      path: ~/scratch
      whole: true
    - path: ~/tmpstuff
    - name: No path
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "size", cfg.Sort)
	assert.Equal(t, []string{filepath.Join(home, "Apps"), "/opt/Apps"}, cfg.ApplicationDirs())

	locs := cfg.JunkLocations()
	want := len(scanner.DefaultJunkLocations()) + len(scanner.ExtendedJunkLocations()) + 2
	require.Len(t, locs, want)
	scratch := locs[want-2]
	assert.Equal(t, "Scratch", scratch.Name)
	assert.True(t, scratch.Whole)
	assert.Equal(t, "tmpstuff", locs[want-1].Name)
	assert.NotEmpty(t, locs[want-1].Icon)

	s := scanner.NewScanner(t.TempDir(), nil)
	cfg.Apply(s)
	assert.Equal(t, home, s.HomeDir)
	assert.Equal(t, 3, s.Workers)
	assert.Len(t, s.Locations, want)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CLEANMAC_WORKERS", "7")
	t.Setenv("CLEANMAC_VERBOSE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.True(t, cfg.Verbose)
}

func TestLoad_EnvNestedKey(t *testing.T) {
	t.Setenv("CLEANMAC_JUNK_EXTENDED", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Junk.Extended)
	assert.Greater(t, len(cfg.JunkLocations()), len(scanner.DefaultJunkLocations()))
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
