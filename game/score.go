package game

import "math"

// Termination reasons.
const (
	ReasonWinScore   = "win_score"
	ReasonEliminated = "eliminated"
	ReasonMaxTurns   = "max_turns"
)

// TerminationResult describes whether a game has ended and how.
type TerminationResult struct {
	Done   bool
	Draw   bool
	Winner Player // valid only when Done and not Draw
	Reason string
}

// FuelPoints converts the remaining fuel of a player's active tokens to
// points using the per-role conversion factors, floored to a whole number.
func FuelPoints(gs *GameState, p Player) float64 {
	pc := gs.Config.Player(p)
	points := 0.0
	for _, id := range gs.Registry.PlayerIDs(p) {
		tok, _ := gs.Registry.Get(id)
		if tok.Status != Active || tok.Fuel <= 0 {
			continue
		}
		points += tok.Fuel * pc.FuelPointsFactor.For(tok.Role)
	}
	return math.Floor(points)
}

// EvaluateEnd checks the game-end conditions. For a finalized state it
// returns the stored outcome; otherwise it evaluates the triggers against
// the current state without mutating it.
func EvaluateEnd(gs *GameState) TerminationResult {
	if gs.Done {
		return gs.Outcome
	}
	trigger := terminationTrigger(gs)
	if !trigger.Done || trigger.Reason == ReasonEliminated {
		return trigger
	}
	// projected final scores: cumulative plus the would-be fuel bonus
	return decideByScore(trigger, gs.Scores[Alpha]+FuelPoints(gs, Alpha), gs.Scores[Beta]+FuelPoints(gs, Beta))
}

// terminationTrigger checks whether any end condition holds. For win-score
// and max-turns triggers the winner is decided later from final scores.
func terminationTrigger(gs *GameState) TerminationResult {
	alphaOut := gs.Registry.ActiveSeekers(Alpha) == 0 || gs.Registry.ActiveCount(Alpha) == 0
	betaOut := gs.Registry.ActiveSeekers(Beta) == 0 || gs.Registry.ActiveCount(Beta) == 0
	switch {
	case alphaOut && betaOut:
		return TerminationResult{Done: true, Draw: true, Reason: ReasonEliminated}
	case alphaOut:
		return TerminationResult{Done: true, Winner: Beta, Reason: ReasonEliminated}
	case betaOut:
		return TerminationResult{Done: true, Winner: Alpha, Reason: ReasonEliminated}
	}
	if effectiveScore(gs, Alpha) >= gs.Config.Alpha.WinScore ||
		effectiveScore(gs, Beta) >= gs.Config.Beta.WinScore {
		return TerminationResult{Done: true, Reason: ReasonWinScore}
	}
	if gs.Turn >= gs.Config.MaxTurns {
		return TerminationResult{Done: true, Reason: ReasonMaxTurns}
	}
	return TerminationResult{}
}

// effectiveScore is the score compared against the win threshold. The
// projected terminal fuel bonus is included only when the configuration
// says so.
func effectiveScore(gs *GameState, p Player) float64 {
	score := gs.Scores[p]
	if gs.Config.WinOnProjectedScore {
		score += FuelPoints(gs, p)
	}
	return score
}

// finalizeIfTerminal freezes the state when an end condition holds, adding
// each player's terminal fuel bonus exactly once before deciding the winner.
func (gs *GameState) finalizeIfTerminal() {
	trigger := terminationTrigger(gs)
	if !trigger.Done {
		return
	}
	for _, p := range []Player{Alpha, Beta} {
		bonus := FuelPoints(gs, p)
		gs.Bonus[p] = bonus
		gs.Scores[p] += bonus
	}
	outcome := trigger
	if trigger.Reason != ReasonEliminated {
		outcome = decideByScore(trigger, gs.Scores[Alpha], gs.Scores[Beta])
	}
	gs.Done = true
	gs.Outcome = outcome
}

func decideByScore(trigger TerminationResult, alphaScore, betaScore float64) TerminationResult {
	switch {
	case alphaScore > betaScore:
		trigger.Winner = Alpha
	case betaScore > alphaScore:
		trigger.Winner = Beta
	default:
		trigger.Draw = true
	}
	return trigger
}
