// Package engine drives complete games between agents.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"koth/agent"
	"koth/game"
)

// Sink receives every resolved turn, e.g. a replay store. An error aborts
// the game.
type Sink interface {
	OnTurn(next *game.GameState, record *game.TurnRecord) error
}

// Result is the outcome of a completed game.
type Result struct {
	Final   *game.GameState
	Records []*game.TurnRecord
	Outcome game.TerminationResult
}

// Local runs a game between two in-process agents. All engagement draws come
// from a single stream seeded at construction, so a (state, agents, seed)
// triple always replays to the same result.
type Local struct {
	alpha, beta agent.Agent
	src         rand.Source
	sink        Sink
	logger      zerolog.Logger
}

// NewLocal builds a local engine for one game.
func NewLocal(alpha, beta agent.Agent, seed uint64) *Local {
	return &Local{
		alpha:  alpha,
		beta:   beta,
		src:    rand.NewSource(seed),
		logger: log.With().Str("component", "engine").Logger(),
	}
}

// WithSink attaches a per-turn sink.
func (e *Local) WithSink(s Sink) *Local {
	e.sink = s
	return e
}

// Run plays the game from the given state to termination.
func (e *Local) Run(gs *game.GameState) (*Result, error) {
	e.logger.Info().Msgf("starting game: %s vs %s", e.alpha.Name(), e.beta.Name())

	var records []*game.TurnRecord
	for !gs.Done {
		joint := make(map[game.TokenID]game.Action)
		for id, a := range e.alpha.Act(gs, game.Alpha) {
			joint[id] = a
		}
		for id, a := range e.beta.Act(gs, game.Beta) {
			joint[id] = a
		}

		next, record, err := game.ResolveTurn(gs, joint, e.src)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", gs.Turn, err)
		}
		e.logger.Debug().
			Int("turn", record.Turn).
			Float64("alpha_score", next.Score(game.Alpha)).
			Float64("beta_score", next.Score(game.Beta)).
			Int("engagements", len(record.Engagements)).
			Msg("turn resolved")

		if e.sink != nil {
			if err := e.sink.OnTurn(next, record); err != nil {
				return nil, fmt.Errorf("sink at turn %d: %w", record.Turn, err)
			}
		}
		records = append(records, record)
		gs = next
	}

	outcome := gs.Outcome
	if outcome.Draw {
		e.logger.Info().Msgf("game over after %d turns: draw (%s)", gs.Turn, outcome.Reason)
	} else {
		e.logger.Info().Msgf("game over after %d turns: %s wins (%s), score %.0f-%.0f",
			gs.Turn, outcome.Winner, outcome.Reason, gs.Score(game.Alpha), gs.Score(game.Beta))
	}
	return &Result{Final: gs, Records: records, Outcome: outcome}, nil
}
