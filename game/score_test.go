package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFuelPointsFloorsPerPlayer(t *testing.T) {
	cfg := smallConfig()
	cfg.Alpha.FuelPointsFactor = FuelByRole{Seeker: 1.0, Bludger: 0.1}
	cfg.Alpha.Placement = []Placement{{RelAzimuth: 0, Count: 1}}
	gs := mustNewGame(t, cfg)

	seeker, _ := gs.Registry.Get(alphaSeeker())
	seeker.Fuel = 42.5
	bludger, _ := gs.Registry.Get(MakeTokenID(Alpha, Bludger, 0))
	bludger.Fuel = 90

	// 42.5*1.0 + 90*0.1 = 51.5, floored
	require.Equal(t, 51.0, FuelPoints(gs, Alpha))
	require.Equal(t, 0.0, FuelPoints(gs, Beta), "beta converts at factor zero")

	// destroyed tokens score nothing
	bludger.Status = Inactive
	require.Equal(t, 42.0, FuelPoints(gs, Alpha))
}

// a three-turn race: alpha scores one point per turn on its goal, beta scores
// nothing, win threshold is three
func TestWinByHoldingGoal(t *testing.T) {
	cfg := smallConfig()
	cfg.Alpha.InGoalPoints = 1
	cfg.Alpha.WinScore = 3
	cfg.Beta.InGoalPoints = 0
	cfg.Beta.AdjGoalPoints = 0
	cfg.Beta.WinScore = 3

	gs := mustNewGame(t, cfg)
	for turn := 0; turn < 3; turn++ {
		require.False(t, gs.Done)
		require.False(t, EvaluateEnd(gs).Done)
		next, _, err := ResolveTurn(gs, noopJoint(gs), rand.NewSource(uint64(turn)))
		require.NoError(t, err)
		gs = next
	}

	require.True(t, gs.Done)
	require.Equal(t, ReasonWinScore, gs.Outcome.Reason)
	require.Equal(t, Alpha, gs.Outcome.Winner)
	require.False(t, gs.Outcome.Draw)
	require.Equal(t, 3.0, gs.Score(Alpha))
	require.Equal(t, gs.Outcome, EvaluateEnd(gs), "a finalized state reports its stored outcome")
}

// both seekers trade guaranteed shots in the same volley and destroy each
// other, ending the game in an elimination draw
func TestMutualDestructionIsADraw(t *testing.T) {
	cfg := smallConfig()
	cfg.Alpha.EngageProbs.Adjacent.Shoot = 1.0
	cfg.Beta.EngageProbs.Adjacent.Shoot = 1.0

	gs := mustNewGame(t, cfg)
	joint := map[TokenID]Action{
		alphaSeeker(): {Token: alphaSeeker(), Kind: Shoot, Target: betaSeeker()},
		betaSeeker():  {Token: betaSeeker(), Kind: Shoot, Target: alphaSeeker()},
	}

	next, record, err := ResolveTurn(gs, joint, rand.NewSource(1))
	require.NoError(t, err)

	require.True(t, next.Done)
	require.True(t, next.Outcome.Draw)
	require.Equal(t, ReasonEliminated, next.Outcome.Reason)

	// both shots resolved before either casualty was removed
	require.Len(t, record.Engagements, 2)
	require.True(t, record.Engagements[0].Success)
	require.True(t, record.Engagements[1].Success)
}

func TestMaxTurnsDecidedByScore(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxTurns = 2
	cfg.Beta.InGoalPoints = 3

	gs := mustNewGame(t, cfg)
	for turn := 0; turn < 2; turn++ {
		next, _, err := ResolveTurn(gs, noopJoint(gs), rand.NewSource(uint64(turn)))
		require.NoError(t, err)
		gs = next
	}

	require.True(t, gs.Done)
	require.Equal(t, ReasonMaxTurns, gs.Outcome.Reason)
	require.Equal(t, Alpha, gs.Outcome.Winner, "alpha held the goal at a better rate")
	require.Equal(t, 20.0, gs.Score(Alpha))
	require.Equal(t, 6.0, gs.Score(Beta))
}

func TestTerminalFuelBonusAddedOnce(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxTurns = 1
	cfg.Alpha.FuelPointsFactor.Seeker = 1.0

	gs := mustNewGame(t, cfg)
	next, _, err := ResolveTurn(gs, noopJoint(gs), rand.NewSource(1))
	require.NoError(t, err)

	require.True(t, next.Done)
	require.Equal(t, 100.0, next.Bonus[Alpha])
	require.Equal(t, 110.0, next.Score(Alpha), "goal points plus the one-time fuel bonus")
	require.Equal(t, 10.0, next.Score(Beta))

	// no further turns, so no way to double-count the bonus
	_, _, err = ResolveTurn(next, noopJoint(next), rand.NewSource(2))
	requireInvalidTurn(t, err, "")
	require.Equal(t, 110.0, next.Score(Alpha))
}

func TestProjectedScoreWinIsOptIn(t *testing.T) {
	cfg := smallConfig()
	cfg.Alpha.FuelPointsFactor.Seeker = 1.0
	cfg.Alpha.WinScore = 105

	// cumulative score alone (10) stays under the threshold
	gs := mustNewGame(t, cfg)
	next, _, err := ResolveTurn(gs, noopJoint(gs), rand.NewSource(1))
	require.NoError(t, err)
	require.False(t, next.Done)

	// with projection enabled, 10 + 100 fuel crosses it on the first turn
	cfg.WinOnProjectedScore = true
	gs = mustNewGame(t, cfg)
	next, _, err = ResolveTurn(gs, noopJoint(gs), rand.NewSource(1))
	require.NoError(t, err)
	require.True(t, next.Done)
	require.Equal(t, ReasonWinScore, next.Outcome.Reason)
	require.Equal(t, Alpha, next.Outcome.Winner)
}

func TestEliminationBeatsScore(t *testing.T) {
	cfg := smallConfig()
	cfg.Beta.EngageProbs.Adjacent.Shoot = 1.0
	cfg.Beta.InGoalPoints = 0
	cfg.Beta.AdjGoalPoints = 0

	gs := mustNewGame(t, cfg)
	gs.Scores[Alpha] = 50 // alpha is far ahead on points
	joint := noopJoint(gs)
	joint[betaSeeker()] = Action{Token: betaSeeker(), Kind: Shoot, Target: alphaSeeker()}

	next, _, err := ResolveTurn(gs, joint, rand.NewSource(1))
	require.NoError(t, err)

	// beta wins by elimination even though alpha leads on points
	require.True(t, next.Done)
	require.Equal(t, ReasonEliminated, next.Outcome.Reason)
	require.Equal(t, Beta, next.Outcome.Winner)
	require.Equal(t, 50.0, next.Score(Alpha))
	require.Equal(t, 0.0, next.Score(Beta))
}
