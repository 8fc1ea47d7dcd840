package game

import "golang.org/x/exp/rand"

// Randomize produces a valid randomized starting registry for training
// variation. Seekers start on their own goal; bludgers are placed uniformly
// over the sectors within the configured start zone around it (the whole
// playable board when the radius is zero). All tokens get full fuel and
// ammo. The same (config, seed) pair always yields the same registry.
func Randomize(cfg Config, seed uint64) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board := NewBoard(cfg.MinRing, cfg.GeoRing, cfg.MaxRing)
	goals := board.initialGoals()
	rng := rand.New(rand.NewSource(seed))

	registry := NewRegistry()
	for _, p := range []Player{Alpha, Beta} {
		pc := cfg.Player(p)
		goal := goals[p]
		for i := 0; i < pc.Seekers; i++ {
			registry.Add(&Token{
				ID:     MakeTokenID(p, Seeker, i),
				Owner:  p,
				Role:   Seeker,
				Sector: goal,
				Fuel:   pc.InitFuel.Seeker,
				Ammo:   pc.InitAmmo.Seeker,
				Status: Active,
			})
		}
		zone := startZone(board, goal, pc.StartZoneRadius)
		for i := 0; i < pc.Bludgers(); i++ {
			registry.Add(&Token{
				ID:     MakeTokenID(p, Bludger, i),
				Owner:  p,
				Role:   Bludger,
				Sector: zone[rng.Intn(len(zone))],
				Fuel:   pc.InitFuel.Bludger,
				Ammo:   pc.InitAmmo.Bludger,
				Status: Active,
			})
		}
	}
	return registry, nil
}

// startZone lists the candidate starting sectors around a goal in ascending
// sector order, so placement depends only on the seed.
func startZone(board *Board, goal Sector, radius int) []Sector {
	if radius <= 0 {
		var all []Sector
		for n := 0; n < board.NumSectors(); n++ {
			if s := Sector(n); board.Contains(s) {
				all = append(all, s)
			}
		}
		return all
	}
	return board.SectorsWithin(goal, radius)
}
