package game

// EngagementOutcome is the audit record of one resolved engagement draw.
type EngagementOutcome struct {
	Kind     ActionKind `json:"kind"`
	Attacker TokenID    `json:"attacker,omitempty"`
	Target   TokenID    `json:"target"`
	Guardian TokenID    `json:"guardian,omitempty"`
	Prob     float64    `json:"prob"`
	Success  bool       `json:"success"`
}

// TurnRecord is the immutable audit record of one resolved turn. Together
// with the initial state and the random seed it is sufficient to reconstruct
// every intermediate state by deterministic replay.
type TurnRecord struct {
	Turn        int                 `json:"turn"` // turn counter before this resolution
	Actions     map[TokenID]Action  `json:"actions"`
	Engagements []EngagementOutcome `json:"engagements"`
	ScoreDeltas [2]float64          `json:"score_deltas"`
	Tokens      []Token             `json:"tokens"` // registry snapshot after resolution
}
