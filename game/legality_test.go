package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kindsOf(actions []Action) []ActionKind {
	kinds := make([]ActionKind, 0, len(actions))
	for _, a := range actions {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

func TestNoopAlwaysLegal(t *testing.T) {
	gs := mustNewGame(t, smallConfig())
	for _, id := range gs.Registry.IDs() {
		require.Contains(t, LegalActions(gs, id), NoopAction(id))
	}
}

func TestInactiveAndUnknownTokensHaveNoActions(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	tok, _ := gs.Registry.Get(betaSeeker())
	tok.Status = Inactive
	require.Empty(t, gs.LegalActions(betaSeeker()))
	require.Empty(t, gs.LegalActions(TokenID("alpha:bludger:99")))

	set := LegalActionSet(gs)
	require.NotContains(t, set, betaSeeker())
	require.Contains(t, set, alphaSeeker())
}

func TestNoActionsAfterGameEnds(t *testing.T) {
	gs := mustNewGame(t, smallConfig())
	gs.Done = true
	require.Empty(t, gs.LegalActions(alphaSeeker()))
}

func TestMovesRespectBoardEdges(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	// the alpha seeker starts on the inner ring: no radial in
	kinds := kindsOf(LegalActions(gs, alphaSeeker()))
	require.NotContains(t, kinds, MoveRadialIn)
	require.Contains(t, kinds, MoveRadialOut)

	// on the outer ring: no radial out
	tok, _ := gs.Registry.Get(alphaSeeker())
	tok.Sector = 5
	kinds = kindsOf(LegalActions(gs, alphaSeeker()))
	require.Contains(t, kinds, MoveRadialIn)
	require.NotContains(t, kinds, MoveRadialOut)
}

func TestMovesRequireFuel(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	tok, _ := gs.Registry.Get(alphaSeeker())
	tok.Fuel = 4 // below every movement and engagement cost

	actions := LegalActions(gs, alphaSeeker())
	require.Equal(t, []Action{NoopAction(alphaSeeker())}, actions)
}

func TestShootRequiresAmmo(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	tok, _ := gs.Registry.Get(alphaSeeker())
	tok.Ammo = 0

	kinds := kindsOf(LegalActions(gs, alphaSeeker()))
	require.NotContains(t, kinds, Shoot)
	require.Contains(t, kinds, Collide, "ramming needs no ammunition")
}

func TestEngagementsRequireRange(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	// move the beta seeker out of range of the alpha seeker
	tok, _ := gs.Registry.Get(betaSeeker())
	tok.Sector = 5

	for _, a := range LegalActions(gs, alphaSeeker()) {
		require.False(t, a.Kind.IsEngagement(), "no engagements out of range, got %s", a.Kind)
	}
}

func TestInactiveTokensCannotBeTargeted(t *testing.T) {
	gs := mustNewGame(t, smallConfig())

	tok, _ := gs.Registry.Get(betaSeeker())
	tok.Status = Inactive

	for _, a := range LegalActions(gs, alphaSeeker()) {
		require.NotEqual(t, betaSeeker(), a.Target)
	}
}

func TestGuardRequiresThreatenedSeeker(t *testing.T) {
	cfg := smallConfig()
	cfg.Alpha.Placement = []Placement{{RelAzimuth: 0, Count: 1}}
	gs := mustNewGame(t, cfg)
	guardian := MakeTokenID(Alpha, Bludger, 0)

	// the beta seeker sits next door, so the alpha seeker is threatened
	require.Contains(t, LegalActions(gs, guardian),
		Action{Token: guardian, Kind: Guard, Target: alphaSeeker()})

	// once the threat leaves, guarding is pointless and therefore illegal
	tok, _ := gs.Registry.Get(betaSeeker())
	tok.Sector = 5
	kinds := kindsOf(LegalActions(gs, guardian))
	require.NotContains(t, kinds, Guard)
}

func TestMoveDestinationsAreAdjacent(t *testing.T) {
	gs := mustNewGame(t, DefaultConfig())
	for _, id := range gs.Registry.IDs() {
		tok, _ := gs.Registry.Get(id)
		for _, a := range LegalActions(gs, id) {
			if !a.Kind.IsMove() {
				continue
			}
			dest, ok := Destination(gs.Board, tok.Sector, a.Kind)
			require.True(t, ok)
			require.True(t, gs.Board.Adjacent(tok.Sector, dest),
				"%s from %d lands on non-adjacent %d", a.Kind, tok.Sector, dest)
		}
	}
}
