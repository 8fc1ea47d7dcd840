package game

// ActionKind enumerates everything a token can do in one turn.
type ActionKind int

const (
	Noop ActionKind = iota
	MovePrograde
	MoveRetrograde
	MoveRadialIn
	MoveRadialOut
	Shoot   // expend one ammo to deactivate an enemy token
	Collide // ram an enemy token, destroying both on success
	Guard   // screen an own seeker, absorbing attacks aimed at it
)

var actionKindNames = map[ActionKind]string{
	Noop:           "noop",
	MovePrograde:   "prograde",
	MoveRetrograde: "retrograde",
	MoveRadialIn:   "radial_in",
	MoveRadialOut:  "radial_out",
	Shoot:          "shoot",
	Collide:        "collide",
	Guard:          "guard",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsMove reports whether the kind is a movement action.
func (k ActionKind) IsMove() bool {
	return k >= MovePrograde && k <= MoveRadialOut
}

// IsEngagement reports whether the kind is an engagement action.
func (k ActionKind) IsEngagement() bool {
	return k == Shoot || k == Collide || k == Guard
}

// Action is one token's proposal for a turn. Movement kinds carry no target;
// engagement kinds name the targeted token (an enemy for Shoot and Collide,
// an own seeker for Guard).
type Action struct {
	Token  TokenID    `json:"token"`
	Kind   ActionKind `json:"kind"`
	Target TokenID    `json:"target,omitempty"`
}

// NoopAction returns the always-legal do-nothing action for a token.
func NoopAction(id TokenID) Action {
	return Action{Token: id, Kind: Noop}
}

// Destination resolves a movement kind to the sector it leads to from a
// given origin. Returns false when the move leaves the playable board.
func Destination(b *Board, from Sector, kind ActionKind) (Sector, bool) {
	switch kind {
	case MovePrograde:
		return b.Prograde(from), true
	case MoveRetrograde:
		return b.Retrograde(from), true
	case MoveRadialIn:
		return b.RadialIn(from)
	case MoveRadialOut:
		return b.RadialOut(from)
	}
	return from, false
}
