package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10, cfg.Alpha.Bludgers())
	require.Equal(t, 10, cfg.Beta.Bludgers())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"min ring below one", func(c *Config) { c.MinRing = 0 }, "min_ring"},
		{"geo ring above max", func(c *Config) { c.GeoRing = c.MaxRing + 1 }, "geo_ring"},
		{"no turns", func(c *Config) { c.MaxTurns = 0 }, "max_turns"},
		{"no seekers", func(c *Config) { c.Beta.Seekers = 0 }, "beta.seekers"},
		{"negative fuel", func(c *Config) { c.Alpha.InitFuel.Bludger = -1 }, "alpha.init_fuel"},
		{"negative ammo", func(c *Config) { c.Alpha.InitAmmo.Bludger = -1 }, "alpha.init_ammo"},
		{"zero win score", func(c *Config) { c.Alpha.WinScore = 0 }, "alpha.win_score"},
		{"probability above one", func(c *Config) { c.Beta.EngageProbs.Adjacent.Shoot = 1.5 }, "beta.engage_probs"},
		{"negative cost", func(c *Config) { c.Alpha.FuelUse.RadialOut = -10 }, "alpha.fuel_use"},
		{"negative group count", func(c *Config) { c.Beta.Placement = []Placement{{Count: -1}} }, "beta.placement"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, tc.field, cerr.Field)
		})
	}
}

func TestPerPlayerConfigsAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alpha.InGoalPoints = 42
	require.Equal(t, 42.0, cfg.Player(Alpha).InGoalPoints)
	require.Equal(t, 10.0, cfg.Player(Beta).InGoalPoints)
}
