package agent

import (
	"golang.org/x/exp/rand"

	"koth/game"
)

// Random picks uniformly from each token's legal actions. Seeded, so a
// (state, seed) pair always produces the same joint action.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random agent drawing from its own seeded stream.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string { return "random" }

func (a *Random) Act(gs *game.GameState, p game.Player) map[game.TokenID]game.Action {
	actions := make(map[game.TokenID]game.Action)
	for _, id := range gs.Registry.PlayerIDs(p) {
		legal := gs.LegalActions(id)
		if len(legal) == 0 {
			continue
		}
		actions[id] = legal[a.rng.Intn(len(legal))]
	}
	return actions
}
