package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// InvalidTurnError reports an illegal or incomplete joint action submission.
// The state passed to ResolveTurn is left unmodified; the caller re-collects
// actions and retries.
type InvalidTurnError struct {
	Token  TokenID
	Reason string
}

func (e *InvalidTurnError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid turn: %s", e.Reason)
	}
	return fmt.Sprintf("invalid turn: token %s: %s", e.Token, e.Reason)
}

// engagement is one validated engagement with its geometry locked at
// submission time: range class, success probability, and fuel cost are all
// fixed before the movement phase shifts positions.
type engagement struct {
	attacker TokenID
	target   TokenID
	kind     ActionKind
	prob     float64
	cost     float64
}

// ResolveTurn consumes one legal action per active token and produces the
// next state plus an audit record. Resolution is all-or-nothing: on error
// the input state is returned unchanged and no record is emitted.
//
// Phases run in a fixed order: movement (simultaneous), engagement (guards,
// then the full shoot volley, then collides, each in ascending token order),
// goal scoring, and drift when enabled. All randomness comes from src, so
// identical (state, joint, seed) triples reproduce identical records.
func ResolveTurn(gs *GameState, joint map[TokenID]Action, src rand.Source) (*GameState, *TurnRecord, error) {
	if gs.Done {
		return gs, nil, &InvalidTurnError{Reason: "game is over"}
	}
	if src == nil {
		return gs, nil, &InvalidTurnError{Reason: "nil random source"}
	}

	legal := LegalActionSet(gs)
	for id, action := range joint {
		if action.Token != id {
			return gs, nil, &InvalidTurnError{Token: id, Reason: "action token mismatch"}
		}
		if !containsAction(legal[id], action) {
			return gs, nil, &InvalidTurnError{Token: id, Reason: fmt.Sprintf("action %s is not legal", action.Kind)}
		}
	}
	for id := range legal {
		if _, ok := joint[id]; !ok {
			return gs, nil, &InvalidTurnError{Token: id, Reason: "active token has no action"}
		}
	}

	// lock engagement geometry before anything moves
	engagements := lockEngagements(gs, joint)

	next := gs.Copy()
	rng := rand.New(src)
	prevScores := next.Scores

	moveTokens(next, joint)
	outcomes := resolveEngagements(next, engagements, rng)
	scoreGoals(next)
	if next.Config.Drift {
		drift(next)
	}
	record := &TurnRecord{
		Turn:        next.Turn,
		Actions:     copyActions(joint),
		Engagements: outcomes,
		Tokens:      nil, // snapshot taken after the turn counter advances
	}
	next.Turn++
	next.finalizeIfTerminal()

	record.ScoreDeltas = [2]float64{next.Scores[Alpha] - prevScores[Alpha], next.Scores[Beta] - prevScores[Beta]}
	record.Tokens = next.Registry.Snapshot()
	return next, record, nil
}

// lockEngagements extracts the engagement actions from a validated joint set
// in canonical token order, fixing probability and fuel cost from the
// pre-movement geometry.
func lockEngagements(gs *GameState, joint map[TokenID]Action) []engagement {
	var locked []engagement
	for _, id := range gs.Registry.IDs() {
		action, ok := joint[id]
		if !ok || !action.Kind.IsEngagement() {
			continue
		}
		attacker, _ := gs.Registry.Get(id)
		target, _ := gs.Registry.Get(action.Target)
		pc := gs.Config.Player(attacker.Owner)
		rng := classifyRange(gs.Board, attacker.Sector, target.Sector)
		locked = append(locked, engagement{
			attacker: id,
			target:   action.Target,
			kind:     action.Kind,
			prob:     rangedCost(pc.EngageProbs, rng, action.Kind),
			cost:     rangedCost(pc.FuelUse.Engage, rng, action.Kind),
		})
	}
	return locked
}

// moveTokens applies all movement actions simultaneously. Tokens may share a
// sector; there is no collision blocking.
func moveTokens(gs *GameState, joint map[TokenID]Action) {
	for _, id := range gs.Registry.IDs() {
		action, ok := joint[id]
		if !ok || !action.Kind.IsMove() {
			continue
		}
		tok, _ := gs.Registry.Get(id)
		dest, ok := Destination(gs.Board, tok.Sector, action.Kind)
		if !ok {
			continue // unreachable for validated actions
		}
		tok.Sector = dest
		spendFuel(gs, tok, gs.Config.Player(tok.Owner).FuelUse.MoveCost(action.Kind))
	}
}

// resolveEngagements runs the three engagement sub-phases. Guards absorb
// incoming attacks first, then every shoot resolves before any casualty is
// removed (so mutual shots all get their draw), then collides resolve
// sequentially.
func resolveEngagements(gs *GameState, engagements []engagement, rng *rand.Rand) []EngagementOutcome {
	var outcomes []EngagementOutcome

	// guard sub-phase: reroute attacks aimed at the guarded seeker
	for gi := range engagements {
		g := &engagements[gi]
		if g.kind != Guard {
			continue
		}
		guardian, _ := gs.Registry.Get(g.attacker)
		seeker, _ := gs.Registry.Get(g.target)
		spendFuel(gs, guardian, g.cost)
		guardian.Sector = seeker.Sector

		absorbed := 0
		prob := g.prob
		recorded := false
		for ai := range engagements {
			attack := &engagements[ai]
			if attack.kind != Shoot && attack.kind != Collide {
				continue
			}
			if attack.target != g.target {
				continue
			}
			success := rng.Float64() < prob
			if success {
				attack.target = g.attacker
			}
			outcomes = append(outcomes, EngagementOutcome{
				Kind:     Guard,
				Attacker: attack.attacker,
				Target:   g.target,
				Guardian: g.attacker,
				Prob:     prob,
				Success:  success,
			})
			recorded = true
			if success {
				// each absorbed attack halves the next guard chance
				absorbed++
				prob = g.prob / float64(int(1)<<absorbed)
			}
		}
		if !recorded {
			outcomes = append(outcomes, EngagementOutcome{
				Kind:     Guard,
				Target:   g.target,
				Guardian: g.attacker,
				Prob:     g.prob,
				Success:  false,
			})
		}
	}

	// shoot sub-phase: whole volley draws before casualties are removed
	destroyed := make(map[TokenID]bool)
	for _, s := range engagements {
		if s.kind != Shoot {
			continue
		}
		attacker, _ := gs.Registry.Get(s.attacker)
		target, _ := gs.Registry.Get(s.target)
		attacker.Ammo--
		spendFuel(gs, attacker, s.cost)
		success := rng.Float64() < s.prob && target.Status == Active
		if success {
			destroyed[s.target] = true
		}
		outcomes = append(outcomes, EngagementOutcome{
			Kind:     Shoot,
			Attacker: s.attacker,
			Target:   s.target,
			Prob:     s.prob,
			Success:  success,
		})
	}
	for id := range destroyed {
		destroy(gs, id)
	}

	// collide sub-phase: sequential, attackers destroyed earlier are skipped
	for _, c := range engagements {
		if c.kind != Collide {
			continue
		}
		attacker, _ := gs.Registry.Get(c.attacker)
		if attacker.Status != Active {
			continue
		}
		target, _ := gs.Registry.Get(c.target)
		spendFuel(gs, attacker, c.cost)
		if target.Status == Active {
			attacker.Sector = target.Sector
		}
		success := rng.Float64() < c.prob && target.Status == Active
		if success {
			destroy(gs, c.attacker)
			destroy(gs, c.target)
		}
		outcomes = append(outcomes, EngagementOutcome{
			Kind:     Collide,
			Attacker: c.attacker,
			Target:   c.target,
			Prob:     c.prob,
			Success:  success,
		})
	}
	return outcomes
}

// scoreGoals awards goal-sector points to every active seeker in or next to
// its own goal. Awarded every turn the condition holds.
func scoreGoals(gs *GameState) {
	for _, p := range []Player{Alpha, Beta} {
		pc := gs.Config.Player(p)
		goal := gs.Goals[p]
		for _, id := range gs.Registry.PlayerIDs(p) {
			tok, _ := gs.Registry.Get(id)
			if tok.Role != Seeker || tok.Status != Active {
				continue
			}
			var points float64
			switch {
			case tok.Sector == goal:
				points = pc.InGoalPoints
			case gs.Board.Adjacent(tok.Sector, goal):
				points = pc.AdjGoalPoints
			}
			tok.Points += points
			gs.Scores[p] += points
		}
	}
}

// drift advances every token and both goal sectors one sector prograde and
// charges active tokens the station-keeping cost.
func drift(gs *GameState) {
	for _, id := range gs.Registry.IDs() {
		tok, _ := gs.Registry.Get(id)
		if tok.Status == Active {
			spendFuel(gs, tok, gs.Config.Player(tok.Owner).FuelUse.Drift)
		}
		tok.Sector = gs.Board.Prograde(tok.Sector)
	}
	gs.Goals[Alpha] = gs.Board.Prograde(gs.Goals[Alpha])
	gs.Goals[Beta] = gs.Board.Prograde(gs.Goals[Beta])
}

// spendFuel deducts fuel and deactivates the token if it runs dry.
func spendFuel(gs *GameState, tok *Token, amount float64) {
	tok.Fuel -= amount
	minFuel := gs.Config.Player(tok.Owner).MinFuel
	if tok.Fuel <= minFuel {
		tok.Fuel = minFuel
		tok.Status = Inactive
	}
}

// destroy deactivates a token and drains its fuel, matching the original
// rule that destroyed satellites are left dead in orbit.
func destroy(gs *GameState, id TokenID) {
	tok, ok := gs.Registry.Get(id)
	if !ok {
		return
	}
	tok.Fuel = gs.Config.Player(tok.Owner).MinFuel
	tok.Status = Inactive
}

func copyActions(joint map[TokenID]Action) map[TokenID]Action {
	c := make(map[TokenID]Action, len(joint))
	for id, a := range joint {
		c[id] = a
	}
	return c
}
