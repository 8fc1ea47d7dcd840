package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"koth/game"
)

func newGame(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGame(game.DefaultConfig())
	require.NoError(t, err)
	return gs
}

func TestIdleHoldsEveryToken(t *testing.T) {
	gs := newGame(t)
	actions := Idle{}.Act(gs, game.Alpha)

	require.Len(t, actions, len(gs.Registry.PlayerIDs(game.Alpha)))
	for id, a := range actions {
		require.Equal(t, game.NoopAction(id), a)
	}
}

func TestRandomProposesOnlyLegalActions(t *testing.T) {
	gs := newGame(t)
	a := NewRandom(3)

	for _, p := range []game.Player{game.Alpha, game.Beta} {
		actions := a.Act(gs, p)
		require.Len(t, actions, len(gs.Registry.PlayerIDs(p)))
		for id, action := range actions {
			require.Equal(t, id, action.Token)
			require.Contains(t, gs.LegalActions(id), action)
		}
	}
}

func TestRandomSkipsInactiveTokens(t *testing.T) {
	gs := newGame(t)
	id := game.MakeTokenID(game.Alpha, game.Bludger, 0)
	tok, _ := gs.Registry.Get(id)
	tok.Status = game.Inactive

	actions := NewRandom(3).Act(gs, game.Alpha)
	require.NotContains(t, actions, id)
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	gs := newGame(t)
	require.Equal(t, NewRandom(9).Act(gs, game.Alpha), NewRandom(9).Act(gs, game.Alpha))
}
