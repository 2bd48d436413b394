package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pusher/pusher-http-go/v5"
	"golang.org/x/exp/slog"

	"go-wingo/internal/config"
	"go-wingo/internal/event"
	"go-wingo/internal/feed"
	"go-wingo/internal/game/outcome"
	"go-wingo/internal/game/round"
	"go-wingo/internal/http-server/handlers/game/activity"
	"go-wingo/internal/http-server/handlers/game/bet/clear"
	"go-wingo/internal/http-server/handlers/game/bet/confirm"
	"go-wingo/internal/http-server/handlers/game/bet/place"
	"go-wingo/internal/http-server/handlers/game/duration"
	"go-wingo/internal/http-server/handlers/game/state"
	"go-wingo/internal/http-server/middleware/logger"
	"go-wingo/internal/job"
	"go-wingo/internal/lib/logger/handler/slogpretty"
	"go-wingo/internal/lib/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting game server...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	roller := outcome.NewRoller(outcome.NewCryptoSource())

	machine := round.NewMachine(log, round.Config{
		Durations:       cfg.Game.Durations,
		DefaultDuration: cfg.Game.DefaultDuration,
		ResolveDwell:    cfg.Game.ResolveDwell,
		ShowDwell:       cfg.Game.ShowDwell,
		HistorySize:     cfg.Game.HistorySize,
	}, roller, round.ClockScheduler{})

	dispatcher := job.NewDispatcher(64)

	pool := job.NewWorkerPool(2, dispatcher.Jobs())
	pool.Start()

	publisher, err := setupPublisher(cfg, log)
	if err != nil {
		log.Error("failed to init event publisher", sl.Err(err))
		os.Exit(1)
	}

	snapshots, _ := machine.Subscribe()

	forwarder := event.NewForwarder(log, dispatcher, publisher, cfg.WSServer.GameChannel)
	go forwarder.Run(snapshots)

	feedGen := feed.NewGenerator(log, cfg.Feed.FeedTTL)
	if cfg.Feed.FeedEnabled {
		feedGen.Start()
	}

	machine.Start()

	placeBet := place.NewBet(log, machine)
	clearBets := clear.NewClear(log, machine)
	confirmBets := confirm.NewConfirm(log, machine)
	setDuration := duration.NewDuration(log, machine)
	gameState := state.NewState(log, machine)
	gameActivity := activity.NewActivity(log, feedGen)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/game/place-bet", placeBet.New())
	router.Post("/game/clear-bets", clearBets.New())
	router.Post("/game/confirm-bets", confirmBets.New())
	router.Post("/game/duration", setDuration.New())
	router.Get("/game/state", gameState.New())
	router.Get("/game/activity", gameActivity.New())

	log.Info("Server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err = srv.ListenAndServe(); err != nil {
		log.Error("Server failed", sl.Err(err))
	}

	log.Error("Server stopped")
}

func setupPublisher(cfg *config.Config, log *slog.Logger) (event.Publisher, error) {
	if cfg.Pusher.PusherEnabled {
		client := &pusher.Client{
			AppID:   cfg.Pusher.AppID,
			Key:     cfg.Pusher.Key,
			Secret:  cfg.Pusher.Secret,
			Cluster: cfg.Pusher.Cluster,
		}

		return event.NewPusherEvent(log, client), nil
	}

	url := fmt.Sprintf("ws://%s/ws?room=%s", cfg.WSServer.WSAddress, cfg.WSServer.GameChannel)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	return event.NewSocketEvent(log, conn), nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlogLogger()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlogLogger() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
