package replay

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"koth/game"
)

// Replay reconstructs a stored game from its initial conditions by re-running
// every recorded joint action against the recorded seed. Each replayed turn
// is checked against the stored token snapshots; any divergence means the
// archive is corrupt (or the rules changed) and is reported as an error.
// Returns the final state.
func (s *Store) Replay(id uuid.UUID) (*game.GameState, error) {
	meta, err := s.Game(id)
	if err != nil {
		return nil, err
	}
	records, err := s.Turns(id)
	if err != nil {
		return nil, err
	}

	var gs *game.GameState
	if meta.Randomized {
		gs, err = game.NewRandomizedGame(meta.Config, meta.Seed)
	} else {
		gs, err = game.NewGame(meta.Config)
	}
	if err != nil {
		return nil, fmt.Errorf("replay game %s: %w", id, err)
	}

	src := rand.NewSource(meta.Seed)
	for _, stored := range records {
		next, replayed, err := game.ResolveTurn(gs, stored.Actions, src)
		if err != nil {
			return nil, fmt.Errorf("replay game %s at turn %d: %w", id, stored.Turn, err)
		}
		if !snapshotsEqual(replayed.Tokens, stored.Tokens) {
			return nil, fmt.Errorf("replay game %s diverged at turn %d", id, stored.Turn)
		}
		gs = next
	}
	return gs, nil
}

func snapshotsEqual(a, b []game.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
