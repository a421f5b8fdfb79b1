package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"qenolaba/communication"
	"qenolaba/communication/client"
	"qenolaba/communication/peer"
	"qenolaba/communication/server"
	"qenolaba/config"
	"qenolaba/engine"
	"qenolaba/experiments"
	"qenolaba/game"
	"qenolaba/gamemaster"
	"qenolaba/player"
	"qenolaba/searcher"
	"qenolaba/searcher/agent"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode       string
	level      int
	trace      bool
	experiment string
	games      int
	maxTurns   int
	out        string
	remote     string
	server     string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "selfplay", "selfplay | play | experiment | mirror | agent | print | scheme")
	flag.IntVar(&opts.level, "level", 0, "search level 1..4, 0 for the configured one")
	flag.BoolVar(&opts.trace, "trace", false, "log every search iteration and keep the evaluation fixed")
	flag.StringVar(&opts.experiment, "experiment", "levels", "levels | schemes | random | throughput")
	flag.IntVar(&opts.games, "games", experiments.NumGames, "games per matchup")
	flag.IntVar(&opts.maxTurns, "turns", 0, "max turns per game, 0 for the default")
	flag.StringVar(&opts.out, "out", "experiments", "experiment output directory")
	flag.StringVar(&opts.remote, "remote", "", "agent server URL playing X in selfplay")
	flag.StringVar(&opts.server, "server", "", "spectator server URL to mirror positions with")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug || opts.trace {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s failed", opts.mode)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	switch opts.mode {
	case "print":
		b := game.NewBoard()
		b.Begin(cfg.StartSide())
		fmt.Print(b.State())
		return nil
	case "scheme":
		s, err := cfg.Scheme()
		if err != nil {
			return err
		}
		fmt.Println(s.String())
		return nil
	case "selfplay":
		return selfPlay(ctx, cfg, opts)
	case "play":
		return play(ctx, cfg, opts)
	case "experiment":
		return experiment(ctx, cfg, opts)
	case "mirror":
		return mirror(ctx, cfg, opts)
	case "agent":
		s, err := newSearcher(cfg, opts)
		if err != nil {
			return err
		}
		return agent.StartAgentServer(cfg.Network.AgentAddr, agent.NewEvaluationAgent(s))
	}
	return fmt.Errorf("unknown mode %q", opts.mode)
}

func newSearcher(cfg *config.Config, opts options) (*searcher.Searcher, error) {
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	level := cfg.Level()
	if opts.level > 0 {
		level = searcher.Level(opts.level)
	}
	searchOpts := []searcher.Option{searcher.WithLevel(level), searcher.WithScheme(scheme), searcher.WithMetrics()}
	if opts.trace {
		searchOpts = append(searchOpts, searcher.WithTrace())
	}
	return searcher.NewSearcher(searchOpts...), nil
}

func engineOptions(cfg *config.Config, opts options, comm communication.Communicator) []engine.Option {
	engineOpts := []engine.Option{engine.WithStart(cfg.StartSide()), engine.WithCommunicator(comm)}
	if opts.maxTurns > 0 {
		engineOpts = append(engineOpts, engine.WithMaxTurns(opts.maxTurns))
	}
	return engineOpts
}

// communicator connects to the configured collaborators.
func communicator(cfg *config.Config, opts options) (communication.Communicator, error) {
	if opts.server != "" {
		return client.NewClientCommunicator(opts.server), nil
	}
	if len(cfg.Network.Peers) == 0 {
		return communication.Nop(), nil
	}
	return peer.Listen(cfg.Network.Port, cfg.Network.Peers)
}

// selfPlay lets the computer play both sides.
func selfPlay(ctx context.Context, cfg *config.Config, opts options) error {
	s1, err := newSearcher(cfg, opts)
	if err != nil {
		return err
	}
	var player2 agent.Agent
	if opts.remote != "" {
		player2 = engine.NewRemoteAgent(opts.remote)
	} else {
		s2, err := newSearcher(cfg, opts)
		if err != nil {
			return err
		}
		player2 = agent.NewEvaluationAgent(s2)
	}

	comm, err := communicator(cfg, opts)
	if err != nil {
		return err
	}
	defer comm.Close()

	e := engine.NewLocalEngine(agent.NewEvaluationAgent(s1), player2, engineOptions(cfg, opts, comm)...)
	winner, gameMetric, _ := e.Run(ctx)
	fmt.Print(e.Board.State())
	fmt.Printf("winner: %v after %d moves (%v)\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
	return ctx.Err()
}

// play lets a human at the terminal play against the computer sides of
// the config.
func play(ctx context.Context, cfg *config.Config, opts options) error {
	s, err := newSearcher(cfg, opts)
	if err != nil {
		return err
	}
	agents := map[game.Cell]agent.Agent{}
	console := player.NewConsole(os.Stdin, os.Stdout)
	for _, side := range []game.Cell{game.Player1, game.Player2} {
		agents[side] = console
	}
	for _, side := range cfg.ComputerSides() {
		agents[side] = agent.NewEvaluationAgent(s)
	}

	comm, err := communicator(cfg, opts)
	if err != nil {
		return err
	}
	defer comm.Close()

	e := engine.NewLocalEngine(agents[game.Player1], agents[game.Player2], engineOptions(cfg, opts, comm)...)
	winner, _, _ := e.Run(ctx)
	fmt.Print(e.Board.State())
	fmt.Printf("winner: %v\n", winner)
	return nil
}

func experiment(ctx context.Context, cfg *config.Config, opts options) error {
	r := experiments.NewRunner(opts.out)
	r.NumGames = opts.games
	r.MaxTurns = opts.maxTurns

	var dir string
	var err error
	switch opts.experiment {
	case "levels":
		dir, err = r.RunLevelExperiment(ctx)
	case "schemes":
		schemes := []*game.EvalScheme{}
		for _, text := range cfg.Schemes {
			s, err := game.ParseScheme(text)
			if err != nil {
				return err
			}
			schemes = append(schemes, s)
		}
		if len(schemes) == 0 {
			return errors.New("no schemes configured")
		}
		dir, err = r.RunSchemeExperiment(ctx, cfg.Level(), schemes)
	case "random":
		dir, err = r.RunRandomBaseline(ctx)
	case "throughput":
		dir, err = r.RunThroughputExperiment(ctx)
	default:
		return fmt.Errorf("unknown experiment %q", opts.experiment)
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("records written to %s", dir)
	return nil
}

// mirror answers positions from peers and spectators for the computer sides.
func mirror(ctx context.Context, cfg *config.Config, opts options) error {
	s, err := newSearcher(cfg, opts)
	if err != nil {
		return err
	}

	p, err := peer.Listen(cfg.Network.Port, cfg.Network.Peers)
	if err != nil {
		return err
	}
	comms := []communication.Communicator{p}
	if opts.server != "" {
		comms = append(comms, client.NewClientCommunicator(opts.server))
	} else {
		sc := server.NewServerCommunicator()
		sc.Start(cfg.Network.ServerAddr)
		comms = append(comms, sc)
	}
	comm := communication.Multi(comms...)
	defer comm.Close()

	session := gamemaster.NewSession(s)
	session.Init(cfg.StartSide())
	gm := gamemaster.NewGameMaster(comm, session, cfg.ComputerSides()...)
	return gm.RunGame(ctx)
}
