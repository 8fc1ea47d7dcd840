package game

import (
	"fmt"
	"strings"
)

// Player identifies one of the two sides.
type Player int

const (
	Alpha Player = iota
	Beta
)

func (p Player) String() string {
	if p == Alpha {
		return "alpha"
	}
	return "beta"
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Alpha {
		return Beta
	}
	return Alpha
}

// ParsePlayer converts a player name back to a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "alpha":
		return Alpha, nil
	case "beta":
		return Beta, nil
	}
	return 0, fmt.Errorf("unknown player %q", s)
}

// Role is the function of a token: seekers score, bludgers fight.
type Role int

const (
	Seeker Role = iota
	Bludger
)

func (r Role) String() string {
	if r == Seeker {
		return "seeker"
	}
	return "bludger"
}

// Status marks whether a token can still act and be targeted.
type Status int

const (
	Active Status = iota
	Inactive
)

func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// TokenID is the unique identifier of a token, "player:role:index".
type TokenID string

// MakeTokenID builds a token identifier from its parts.
func MakeTokenID(p Player, r Role, index int) TokenID {
	return TokenID(fmt.Sprintf("%s:%s:%d", p, r, index))
}

// Owner extracts the owning player from a token identifier.
func (id TokenID) Owner() (Player, error) {
	name, _, ok := strings.Cut(string(id), ":")
	if !ok {
		return 0, fmt.Errorf("malformed token id %q", id)
	}
	return ParsePlayer(name)
}

// Token is the mutable state of a single playing piece.
type Token struct {
	ID     TokenID
	Owner  Player
	Role   Role
	Sector Sector
	Fuel   float64
	Ammo   int
	Status Status
	Points float64 // cumulative individual score contribution
}

// Registry holds all tokens of a game in a fixed insertion order. The order
// is the canonical ascending token order used for deterministic resolution.
type Registry struct {
	order []TokenID
	byID  map[TokenID]*Token
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[TokenID]*Token)}
}

// Add appends a token to the registry. Adding a duplicate ID panics; token
// sets are fixed at game creation so this is a programming error.
func (r *Registry) Add(t *Token) {
	if _, exists := r.byID[t.ID]; exists {
		panic(fmt.Sprintf("duplicate token id %s", t.ID))
	}
	r.order = append(r.order, t.ID)
	r.byID[t.ID] = t
}

// Get returns the token with the given ID.
func (r *Registry) Get(id TokenID) (*Token, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns all token IDs in canonical order.
func (r *Registry) IDs() []TokenID {
	ids := make([]TokenID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of tokens.
func (r *Registry) Len() int {
	return len(r.order)
}

// PlayerIDs returns the IDs of one player's tokens in canonical order.
func (r *Registry) PlayerIDs(p Player) []TokenID {
	var ids []TokenID
	for _, id := range r.order {
		if r.byID[id].Owner == p {
			ids = append(ids, id)
		}
	}
	return ids
}

// ActiveCount returns how many of a player's tokens can still act.
func (r *Registry) ActiveCount(p Player) int {
	count := 0
	for _, id := range r.order {
		t := r.byID[id]
		if t.Owner == p && t.Status == Active {
			count++
		}
	}
	return count
}

// ActiveSeekers returns how many of a player's seekers can still act.
func (r *Registry) ActiveSeekers(p Player) int {
	count := 0
	for _, id := range r.order {
		t := r.byID[id]
		if t.Owner == p && t.Role == Seeker && t.Status == Active {
			count++
		}
	}
	return count
}

// Copy returns a deep copy of the registry.
func (r *Registry) Copy() *Registry {
	c := NewRegistry()
	for _, id := range r.order {
		tok := *r.byID[id]
		c.Add(&tok)
	}
	return c
}

// Snapshot returns value copies of all tokens in canonical order.
func (r *Registry) Snapshot() []Token {
	tokens := make([]Token, 0, len(r.order))
	for _, id := range r.order {
		tokens = append(tokens, *r.byID[id])
	}
	return tokens
}
