package game

import "fmt"

// ConfigError reports a malformed or internally inconsistent Configuration.
// It is fatal to game creation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// FuelByRole holds a per-role fuel quantity or factor.
type FuelByRole struct {
	Seeker  float64 `yaml:"seeker"`
	Bludger float64 `yaml:"bludger"`
}

// For returns the value for a role.
func (f FuelByRole) For(r Role) float64 {
	if r == Seeker {
		return f.Seeker
	}
	return f.Bludger
}

// AmmoByRole holds per-role ammunition counts.
type AmmoByRole struct {
	Seeker  int `yaml:"seeker"`
	Bludger int `yaml:"bludger"`
}

// For returns the value for a role.
func (a AmmoByRole) For(r Role) int {
	if r == Seeker {
		return a.Seeker
	}
	return a.Bludger
}

// EngageValues holds one value per engagement kind (fuel cost or success
// probability depending on context).
type EngageValues struct {
	Shoot   float64 `yaml:"shoot"`
	Collide float64 `yaml:"collide"`
	Guard   float64 `yaml:"guard"`
}

// For returns the value for an engagement kind.
func (e EngageValues) For(k ActionKind) float64 {
	switch k {
	case Shoot:
		return e.Shoot
	case Collide:
		return e.Collide
	case Guard:
		return e.Guard
	}
	return 0
}

// RangedValues splits engagement values by range class: acting token in the
// same sector as its target, or in an adjacent sector.
type RangedValues struct {
	InSector EngageValues `yaml:"in_sector"`
	Adjacent EngageValues `yaml:"adjacent"`
}

// FuelUse is the fuel cost schedule for one player.
type FuelUse struct {
	Drift      float64      `yaml:"drift"` // station keeping, charged every turn when drift is enabled
	Prograde   float64      `yaml:"prograde"`
	Retrograde float64      `yaml:"retrograde"`
	RadialIn   float64      `yaml:"radial_in"`
	RadialOut  float64      `yaml:"radial_out"`
	Engage     RangedValues `yaml:"engage"`
}

// MoveCost returns the fuel cost of a movement action kind.
func (f FuelUse) MoveCost(k ActionKind) float64 {
	switch k {
	case MovePrograde:
		return f.Prograde
	case MoveRetrograde:
		return f.Retrograde
	case MoveRadialIn:
		return f.RadialIn
	case MoveRadialOut:
		return f.RadialOut
	}
	return 0
}

// Placement describes one group of bludgers placed at a fixed azimuth offset
// from the owning player's goal sector.
type Placement struct {
	RelAzimuth int `yaml:"rel_azimuth"`
	Count      int `yaml:"count"`
}

// PlayerConfig is the full per-player rule set. The two players' configs are
// independent; asymmetric games configure them differently.
type PlayerConfig struct {
	Seekers          int          `yaml:"seekers"`
	Placement        []Placement  `yaml:"placement"`
	InitFuel         FuelByRole   `yaml:"init_fuel"`
	InitAmmo         AmmoByRole   `yaml:"init_ammo"`
	MinFuel          float64      `yaml:"min_fuel"`
	FuelUse          FuelUse      `yaml:"fuel_use"`
	EngageProbs      RangedValues `yaml:"engage_probs"`
	InGoalPoints     float64      `yaml:"in_goal_points"`
	AdjGoalPoints    float64      `yaml:"adj_goal_points"`
	FuelPointsFactor FuelByRole   `yaml:"fuel_points_factor"`
	WinScore         float64      `yaml:"win_score"`
	StartZoneRadius  int          `yaml:"start_zone_radius"` // randomizer constraint; 0 means whole board
}

// Bludgers returns the total bludger count in the placement pattern.
func (pc PlayerConfig) Bludgers() int {
	n := 0
	for _, group := range pc.Placement {
		n += group.Count
	}
	return n
}

// Config holds everything fixed for the lifetime of one game.
type Config struct {
	MinRing             int          `yaml:"min_ring"`
	GeoRing             int          `yaml:"geo_ring"`
	MaxRing             int          `yaml:"max_ring"`
	MaxTurns            int          `yaml:"max_turns"`
	Drift               bool         `yaml:"drift"`
	WinOnProjectedScore bool         `yaml:"win_on_projected_score"`
	Alpha               PlayerConfig `yaml:"alpha"`
	Beta                PlayerConfig `yaml:"beta"`
}

// Player returns the configuration for one player.
func (c *Config) Player(p Player) *PlayerConfig {
	if p == Alpha {
		return &c.Alpha
	}
	return &c.Beta
}

// Validate checks the configuration for internal consistency. It returns a
// *ConfigError describing the first problem found.
func (c *Config) Validate() error {
	if c.MinRing < 1 {
		return &ConfigError{"min_ring", "must be at least 1"}
	}
	if !(c.MinRing <= c.GeoRing && c.GeoRing <= c.MaxRing) {
		return &ConfigError{"geo_ring", "rings must satisfy min_ring <= geo_ring <= max_ring"}
	}
	if c.MaxTurns <= 0 {
		return &ConfigError{"max_turns", "must be positive"}
	}
	for _, p := range []Player{Alpha, Beta} {
		pc := c.Player(p)
		prefix := p.String()
		if pc.Seekers < 1 {
			return &ConfigError{prefix + ".seekers", "each player needs at least one seeker"}
		}
		for _, group := range pc.Placement {
			if group.Count < 0 {
				return &ConfigError{prefix + ".placement", "group count must be non-negative"}
			}
		}
		if pc.InitFuel.Seeker < 0 || pc.InitFuel.Bludger < 0 {
			return &ConfigError{prefix + ".init_fuel", "must be non-negative"}
		}
		if pc.InitAmmo.Seeker < 0 || pc.InitAmmo.Bludger < 0 {
			return &ConfigError{prefix + ".init_ammo", "must be non-negative"}
		}
		if pc.MinFuel < 0 {
			return &ConfigError{prefix + ".min_fuel", "must be non-negative"}
		}
		if pc.WinScore <= 0 {
			return &ConfigError{prefix + ".win_score", "must be positive"}
		}
		if pc.StartZoneRadius < 0 {
			return &ConfigError{prefix + ".start_zone_radius", "must be non-negative"}
		}
		for _, probs := range []EngageValues{pc.EngageProbs.InSector, pc.EngageProbs.Adjacent} {
			for _, prob := range []float64{probs.Shoot, probs.Collide, probs.Guard} {
				if prob < 0 || prob > 1 {
					return &ConfigError{prefix + ".engage_probs", "probabilities must be in [0,1]"}
				}
			}
		}
		costs := []float64{
			pc.FuelUse.Drift, pc.FuelUse.Prograde, pc.FuelUse.Retrograde,
			pc.FuelUse.RadialIn, pc.FuelUse.RadialOut,
			pc.FuelUse.Engage.InSector.Shoot, pc.FuelUse.Engage.InSector.Collide, pc.FuelUse.Engage.InSector.Guard,
			pc.FuelUse.Engage.Adjacent.Shoot, pc.FuelUse.Engage.Adjacent.Collide, pc.FuelUse.Engage.Adjacent.Guard,
		}
		for _, cost := range costs {
			if cost < 0 {
				return &ConfigError{prefix + ".fuel_use", "costs must be non-negative"}
			}
		}
	}
	return nil
}

// DefaultConfig returns the standard symmetric game: a 5-ring board with the
// hill on ring 4, one seeker and ten bludgers per side.
func DefaultConfig() Config {
	player := PlayerConfig{
		Seekers: 1,
		Placement: []Placement{
			{RelAzimuth: -2, Count: 2},
			{RelAzimuth: -1, Count: 2},
			{RelAzimuth: 0, Count: 2},
			{RelAzimuth: 1, Count: 2},
			{RelAzimuth: 2, Count: 2},
		},
		InitFuel: FuelByRole{Seeker: 100, Bludger: 100},
		InitAmmo: AmmoByRole{Seeker: 0, Bludger: 4},
		MinFuel:  0,
		FuelUse: FuelUse{
			Drift:      1,
			Prograde:   5,
			Retrograde: 5,
			RadialIn:   10,
			RadialOut:  10,
			Engage: RangedValues{
				InSector: EngageValues{Shoot: 10, Collide: 10, Guard: 5},
				Adjacent: EngageValues{Shoot: 10, Collide: 20, Guard: 10},
			},
		},
		EngageProbs: RangedValues{
			InSector: EngageValues{Shoot: 0.8, Collide: 0.8, Guard: 0.8},
			Adjacent: EngageValues{Shoot: 0.4, Collide: 0.4, Guard: 0.4},
		},
		InGoalPoints:     10,
		AdjGoalPoints:    3,
		FuelPointsFactor: FuelByRole{Seeker: 1.0, Bludger: 0.1},
		WinScore:         500,
		StartZoneRadius:  3,
	}
	return Config{
		MinRing:  1,
		GeoRing:  4,
		MaxRing:  5,
		MaxTurns: 50,
		Drift:    true,
		Alpha:    player,
		Beta:     player,
	}
}
