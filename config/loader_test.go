package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"koth/game"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
max_turns: 20
drift: false
alpha:
  win_score: 100
  init_ammo:
    seeker: 2
    bludger: 4
`))
	require.NoError(t, err)

	require.Equal(t, 20, cfg.MaxTurns)
	require.False(t, cfg.Drift)
	require.Equal(t, 100.0, cfg.Alpha.WinScore)
	require.Equal(t, 2, cfg.Alpha.InitAmmo.Seeker)

	// untouched fields keep their defaults
	def := game.DefaultConfig()
	require.Equal(t, def.MaxRing, cfg.MaxRing)
	require.Equal(t, def.Beta, cfg.Beta)
	require.Equal(t, def.Alpha.FuelUse, cfg.Alpha.FuelUse)
}

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, game.DefaultConfig(), cfg)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("max_turnz: 20\n"))
	require.Error(t, err)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	_, err := Parse([]byte("max_turns: 0\n"))
	require.Error(t, err)
	var cerr *game.ConfigError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "max_turns", cerr.Field)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_turns: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.MaxTurns)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
