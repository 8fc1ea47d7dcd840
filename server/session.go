package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"koth/engine"
	"koth/game"
)

// submission is one player's actions for one turn.
type submission struct {
	player  game.Player
	turn    int
	actions []game.Action
}

// Session runs one game between two remote players. Each turn it broadcasts
// the state with per-player legal action sets, collects both submissions (or
// lets the turn deadline pass), fills every unsubmitted token with noop, and
// resolves. A player who never submits simply holds position.
type Session struct {
	id      uuid.UUID
	gs      *game.GameState
	src     rand.Source
	timeout time.Duration
	sink    engine.Sink
	logger  zerolog.Logger

	mu    sync.Mutex
	seats map[game.Player]*client

	submissions chan submission
	done        chan struct{}
}

func newSession(id uuid.UUID, gs *game.GameState, seed uint64, timeout time.Duration, sink engine.Sink, logger zerolog.Logger) *Session {
	return &Session{
		id:          id,
		gs:          gs,
		src:         rand.NewSource(seed),
		timeout:     timeout,
		sink:        sink,
		logger:      logger.With().Str("game", id.String()).Logger(),
		seats:       make(map[game.Player]*client),
		submissions: make(chan submission, 2),
		done:        make(chan struct{}),
	}
}

// attach seats a client. The game starts as soon as both seats are taken.
func (s *Session) attach(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.seats[c.player]; taken {
		return false
	}
	s.seats[c.player] = c
	c.enqueue(mustEnvelope(TypeJoined, JoinedPayload{GameID: s.id.String(), Player: c.player.String()}))
	if len(s.seats) == 2 {
		go s.run()
	}
	return true
}

func (s *Session) run() {
	defer func() {
		close(s.done)
		s.closeSeats()
	}()
	s.logger.Info().Msg("both players seated, game on")

	for !s.gs.Done {
		legal := game.LegalActionSet(s.gs)
		s.broadcastState(legal)

		joint := s.collect(legal)
		next, record, err := game.ResolveTurn(s.gs, joint, s.src)
		if err != nil {
			// unreachable while collect only admits legal actions
			s.logger.Error().Err(err).Msg("turn resolution failed, aborting game")
			return
		}
		if s.sink != nil {
			if err := s.sink.OnTurn(next, record); err != nil {
				s.logger.Error().Err(err).Msg("turn sink failed, aborting game")
				return
			}
		}
		s.gs = next
		s.broadcast(mustEnvelope(TypeTurn, TurnPayload{Record: record}))
	}

	outcome := s.gs.Outcome
	s.logger.Info().Msgf("game over after %d turns: %s", s.gs.Turn, outcome.Reason)
	s.broadcast(mustEnvelope(TypeGameOver, GameOverPayload{
		Turn:    s.gs.Turn,
		Scores:  s.gs.Scores,
		Outcome: outcome,
	}))
}

// collect waits for both players' submissions until the turn deadline. Every
// token starts at noop; legal submitted actions overwrite it, illegal ones
// are reported back and dropped.
func (s *Session) collect(legal map[game.TokenID][]game.Action) map[game.TokenID]game.Action {
	joint := make(map[game.TokenID]game.Action, len(legal))
	for id := range legal {
		joint[id] = game.NoopAction(id)
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	received := make(map[game.Player]bool)

	for !received[game.Alpha] || !received[game.Beta] {
		select {
		case sub := <-s.submissions:
			if sub.turn != s.gs.Turn {
				s.sendError(sub.player, "stale submission, not for the current turn")
				continue
			}
			if received[sub.player] {
				s.sendError(sub.player, "actions for this turn already submitted")
				continue
			}
			for _, a := range sub.actions {
				if err := s.admit(legal, sub.player, a); err != "" {
					s.sendError(sub.player, err)
					continue
				}
				joint[a.Token] = a
			}
			received[sub.player] = true
		case <-timer.C:
			return joint
		}
	}
	return joint
}

// admit checks one submitted action against ownership and the legal set.
func (s *Session) admit(legal map[game.TokenID][]game.Action, p game.Player, a game.Action) string {
	tok, ok := s.gs.Token(a.Token)
	if !ok || tok.Owner != p {
		return "not your token: " + string(a.Token)
	}
	for _, l := range legal[a.Token] {
		if l == a {
			return ""
		}
	}
	return "illegal action " + a.Kind.String() + " for token " + string(a.Token)
}

// broadcastState sends the turn state to both seats, each with only its own
// tokens' legal sets.
func (s *Session) broadcastState(legal map[game.TokenID][]game.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, c := range s.seats {
		own := make(map[game.TokenID][]game.Action)
		for id, actions := range legal {
			if tok, ok := s.gs.Token(id); ok && tok.Owner == p {
				own[id] = actions
			}
		}
		c.enqueue(mustEnvelope(TypeState, StatePayload{
			Turn:      s.gs.Turn,
			Scores:    s.gs.Scores,
			Goals:     s.gs.Goals,
			Tokens:    s.gs.Snapshot(),
			Legal:     own,
			TimeoutMS: s.timeout.Milliseconds(),
		}))
	}
}

func (s *Session) broadcast(env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.seats {
		c.enqueue(env)
	}
}

func (s *Session) sendError(p game.Player, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.seats[p]; ok {
		c.enqueue(mustEnvelope(TypeError, ErrorPayload{Message: msg}))
	}
}

func (s *Session) closeSeats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.seats {
		c.close()
	}
}
