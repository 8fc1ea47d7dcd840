// Package agent defines the decision-making interface for a player and two
// baseline implementations used for smoke games and as training opponents.
package agent

import "koth/game"

// Agent proposes one action for each of a player's tokens that must act this
// turn. Implementations must only return actions from the tokens' legal sets;
// the resolution engine rejects the whole turn otherwise.
type Agent interface {
	Name() string
	Act(gs *game.GameState, p game.Player) map[game.TokenID]game.Action
}

// Idle is the do-nothing baseline: every token holds position.
type Idle struct{}

func (Idle) Name() string { return "idle" }

func (Idle) Act(gs *game.GameState, p game.Player) map[game.TokenID]game.Action {
	actions := make(map[game.TokenID]game.Action)
	for _, id := range gs.Registry.PlayerIDs(p) {
		if len(gs.LegalActions(id)) == 0 {
			continue
		}
		actions[id] = game.NoopAction(id)
	}
	return actions
}
