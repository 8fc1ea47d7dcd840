package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"koth/agent"
	"koth/config"
	"koth/engine"
	"koth/game"
	"koth/replay"
	"koth/server"
)

func main() {
	var (
		mode       = flag.String("mode", "local", "local (agents in-process) or serve (websocket server)")
		configPath = flag.String("config", "", "YAML config overlay; defaults apply when empty")
		seed       = flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for placement and engagement draws")
		randomized = flag.Bool("randomized", false, "randomize the starting token placement")
		dbPath     = flag.String("db", "", "SQLite replay archive; games are not recorded when empty")
		addr       = flag.String("addr", ":8080", "listen address in serve mode")
		timeout    = flag.Duration("timeout", server.DefaultTurnTimeout, "per-turn submission deadline in serve mode")
		alphaName  = flag.String("alpha", "random", "alpha agent in local mode: random or idle")
		betaName   = flag.String("beta", "random", "beta agent in local mode: random or idle")
		debug      = flag.Bool("debug", false, "log every resolved turn")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}

	var store *replay.Store
	if *dbPath != "" {
		s, err := replay.Open(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open replay store")
		}
		defer s.Close()
		store = s
	}

	switch *mode {
	case "local":
		runLocal(cfg, *seed, *randomized, store, newAgent(*alphaName, *seed), newAgent(*betaName, *seed+1))
	case "serve":
		serve(cfg, *addr, *timeout, store)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func newAgent(name string, seed uint64) agent.Agent {
	switch name {
	case "random":
		return agent.NewRandom(seed)
	case "idle":
		return agent.Idle{}
	}
	log.Fatal().Msgf("unknown agent %q", name)
	return nil
}

// runLocal plays one game between two agents, optionally archiving and then
// replay-verifying it.
func runLocal(cfg game.Config, seed uint64, randomized bool, store *replay.Store, alpha, beta agent.Agent) {
	var (
		gs  *game.GameState
		err error
	)
	if randomized {
		gs, err = game.NewRandomizedGame(cfg, seed)
	} else {
		gs, err = game.NewGame(cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}

	e := engine.NewLocal(alpha, beta, seed)
	if store != nil {
		id, err := store.CreateGame(cfg, seed, randomized)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register game")
		}
		e.WithSink(store.Sink(id))
		defer func() {
			if _, err := store.Replay(id); err != nil {
				log.Error().Err(err).Msg("replay verification failed")
				return
			}
			log.Info().Msgf("game %s archived and replay-verified", id)
		}()
	}

	if _, err := e.Run(gs); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func serve(cfg game.Config, addr string, timeout time.Duration, store *replay.Store) {
	hub := server.NewHub(cfg, timeout)
	if store != nil {
		hub.WithStore(store)
	}
	log.Info().Msgf("listening on %s", addr)
	if err := http.ListenAndServe(addr, hub.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
