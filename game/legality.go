package game

// engagementRange classifies the geometry of an engagement at submission
// time. Engagements are only possible in-sector or one sector away.
type engagementRange int

const (
	outOfRange engagementRange = iota
	inSector
	adjacentSector
)

func classifyRange(b *Board, from, to Sector) engagementRange {
	switch {
	case from == to:
		return inSector
	case b.Adjacent(from, to):
		return adjacentSector
	}
	return outOfRange
}

// rangedCost picks the in-sector or adjacent-sector value for a range class.
func rangedCost(values RangedValues, rng engagementRange, kind ActionKind) float64 {
	if rng == inSector {
		return values.InSector.For(kind)
	}
	return values.Adjacent.For(kind)
}

// LegalActions enumerates everything one token may do this turn. Inactive or
// unknown tokens get an empty set; filtering wasted actions here keeps them
// out of every downstream consumer, including learning signals.
func LegalActions(gs *GameState, id TokenID) []Action {
	tok, ok := gs.Registry.Get(id)
	if !ok || tok.Status != Active || gs.Done {
		return nil
	}
	pc := gs.Config.Player(tok.Owner)

	actions := []Action{NoopAction(id)}

	// movement: destination must stay on the board and fuel must cover the
	// per-direction cost
	for _, kind := range []ActionKind{MovePrograde, MoveRetrograde, MoveRadialIn, MoveRadialOut} {
		if _, ok := Destination(gs.Board, tok.Sector, kind); !ok {
			continue
		}
		if tok.Fuel >= pc.FuelUse.MoveCost(kind) {
			actions = append(actions, Action{Token: id, Kind: kind})
		}
	}

	// engagements against tokens in range
	for _, targetID := range gs.Registry.IDs() {
		if targetID == id {
			continue
		}
		target, _ := gs.Registry.Get(targetID)
		if target.Status != Active {
			continue
		}
		rng := classifyRange(gs.Board, tok.Sector, target.Sector)
		if rng == outOfRange {
			continue
		}
		if target.Owner == tok.Owner {
			// guard: own seeker only, and only when an enemy threatens it
			if target.Role == Seeker && seekerThreatened(gs, target) &&
				tok.Fuel >= rangedCost(pc.FuelUse.Engage, rng, Guard) {
				actions = append(actions, Action{Token: id, Kind: Guard, Target: targetID})
			}
			continue
		}
		if tok.Fuel >= rangedCost(pc.FuelUse.Engage, rng, Collide) {
			actions = append(actions, Action{Token: id, Kind: Collide, Target: targetID})
		}
		if tok.Ammo >= 1 && tok.Fuel >= rangedCost(pc.FuelUse.Engage, rng, Shoot) {
			actions = append(actions, Action{Token: id, Kind: Shoot, Target: targetID})
		}
	}
	return actions
}

// seekerThreatened reports whether any active enemy token is in engagement
// range of the given seeker.
func seekerThreatened(gs *GameState, seeker *Token) bool {
	for _, id := range gs.Registry.PlayerIDs(seeker.Owner.Opponent()) {
		enemy, _ := gs.Registry.Get(id)
		if enemy.Status != Active {
			continue
		}
		if classifyRange(gs.Board, enemy.Sector, seeker.Sector) != outOfRange {
			return true
		}
	}
	return false
}

// LegalActionSet builds the per-token legal action map for a whole turn.
// Tokens with an empty set (inactive ones) are omitted.
func LegalActionSet(gs *GameState) map[TokenID][]Action {
	set := make(map[TokenID][]Action)
	for _, id := range gs.Registry.IDs() {
		if actions := LegalActions(gs, id); len(actions) > 0 {
			set[id] = actions
		}
	}
	return set
}

// containsAction reports whether an action is in a legal set.
func containsAction(set []Action, a Action) bool {
	for _, legal := range set {
		if legal == a {
			return true
		}
	}
	return false
}
