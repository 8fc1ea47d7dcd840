package server

import (
	"encoding/json"

	"koth/game"
)

// MessageType discriminates the websocket envelope payloads.
type MessageType string

const (
	// server -> client
	TypeJoined   MessageType = "joined"
	TypeState    MessageType = "state"
	TypeTurn     MessageType = "turn"
	TypeGameOver MessageType = "game_over"
	TypeError    MessageType = "error"

	// client -> server
	TypeSubmit MessageType = "submit"
)

// Envelope is the wire frame: a type tag plus a type-specific payload.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func mustEnvelope(t MessageType, payload any) Envelope {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err) // payload types are our own structs
	}
	return Envelope{Type: t, Payload: raw}
}

// JoinedPayload confirms a seat assignment.
type JoinedPayload struct {
	GameID string `json:"game_id"`
	Player string `json:"player"`
}

// StatePayload is broadcast at the start of every turn. Legal holds only the
// receiving player's tokens.
type StatePayload struct {
	Turn      int                            `json:"turn"`
	Scores    [2]float64                     `json:"scores"`
	Goals     [2]game.Sector                 `json:"goals"`
	Tokens    []game.Token                   `json:"tokens"`
	Legal     map[game.TokenID][]game.Action `json:"legal"`
	TimeoutMS int64                          `json:"timeout_ms"`
}

// SubmitPayload carries one player's actions for the named turn. Tokens left
// out act as noop when the turn deadline passes; submissions for any other
// turn are rejected as stale.
type SubmitPayload struct {
	Turn    int           `json:"turn"`
	Actions []game.Action `json:"actions"`
}

// TurnPayload reports one resolved turn to both players.
type TurnPayload struct {
	Record *game.TurnRecord `json:"record"`
}

// GameOverPayload reports the final outcome.
type GameOverPayload struct {
	Turn    int                    `json:"turn"`
	Scores  [2]float64             `json:"scores"`
	Outcome game.TerminationResult `json:"outcome"`
}

// ErrorPayload reports a rejected message; the turn continues.
type ErrorPayload struct {
	Message string `json:"message"`
}
