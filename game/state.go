package game

// GameState is the full dynamic state of one game. The registry is owned by
// the resolution engine: external readers get copies (Copy, Token, Snapshot)
// and never references into the live registry.
type GameState struct {
	Board    *Board
	Config   Config
	Registry *Registry
	Goals    [2]Sector  // current goal ("hill") sector per player; drifts with the board
	Scores   [2]float64 // cumulative score per player
	Bonus    [2]float64 // terminal fuel bonus, set once when the game ends
	Turn     int
	Done     bool
	Outcome  TerminationResult
}

// NewGame creates the initial state from a validated configuration, placing
// tokens by the configured pattern: seekers on the owning player's goal,
// bludger groups at fixed azimuth offsets from it.
func NewGame(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board := NewBoard(cfg.MinRing, cfg.GeoRing, cfg.MaxRing)
	gs := &GameState{
		Board:    board,
		Config:   cfg,
		Registry: NewRegistry(),
		Goals:    board.initialGoals(),
	}
	for _, p := range []Player{Alpha, Beta} {
		pc := cfg.Player(p)
		goal := gs.Goals[p]
		for i := 0; i < pc.Seekers; i++ {
			gs.Registry.Add(&Token{
				ID:     MakeTokenID(p, Seeker, i),
				Owner:  p,
				Role:   Seeker,
				Sector: goal,
				Fuel:   pc.InitFuel.Seeker,
				Ammo:   pc.InitAmmo.Seeker,
				Status: Active,
			})
		}
		index := 0
		for _, group := range pc.Placement {
			for i := 0; i < group.Count; i++ {
				gs.Registry.Add(&Token{
					ID:     MakeTokenID(p, Bludger, index),
					Owner:  p,
					Role:   Bludger,
					Sector: board.RelativeAzimuth(goal, group.RelAzimuth),
					Fuel:   pc.InitFuel.Bludger,
					Ammo:   pc.InitAmmo.Bludger,
					Status: Active,
				})
				index++
			}
		}
	}
	return gs, nil
}

// NewRandomizedGame creates an initial state with randomized token placement
// for training variation. Identical (config, seed) pairs produce identical
// states.
func NewRandomizedGame(cfg Config, seed uint64) (*GameState, error) {
	gs, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	registry, err := Randomize(cfg, seed)
	if err != nil {
		return nil, err
	}
	gs.Registry = registry
	return gs, nil
}

// Copy returns a deep copy. The board and config are immutable and shared.
func (gs *GameState) Copy() *GameState {
	c := *gs
	c.Registry = gs.Registry.Copy()
	return &c
}

// GoalSector returns the current goal sector of a player.
func (gs *GameState) GoalSector(p Player) Sector {
	return gs.Goals[p]
}

// Score returns a player's cumulative score.
func (gs *GameState) Score(p Player) float64 {
	return gs.Scores[p]
}

// Token returns a value copy of a token's state, suitable for read-only
// consumers like renderers.
func (gs *GameState) Token(id TokenID) (Token, bool) {
	t, ok := gs.Registry.Get(id)
	if !ok {
		return Token{}, false
	}
	return *t, true
}

// Snapshot returns value copies of all tokens in canonical order.
func (gs *GameState) Snapshot() []Token {
	return gs.Registry.Snapshot()
}

// LegalActions returns the legal action set of one token. Inactive and
// unknown tokens yield an empty set, never an error.
func (gs *GameState) LegalActions(id TokenID) []Action {
	return LegalActions(gs, id)
}
