package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cardclient/internal/app"
	"cardclient/internal/automation"
	"cardclient/internal/config"
	"cardclient/internal/ports/nakama"
)

func main() {
	configPath := flag.String("config", "client_config.json", "path to the client config file")
	gameID := flag.String("game", "", "game id to attach to")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := config.LoadClientConfig(*configPath); err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}
	cfg := config.GetClientConfig()

	if *gameID == "" {
		log.Fatal("missing -game flag")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var client *app.Client
	surface := automation.NewSurface(func(fn func()) { client.Post(fn) })

	dialCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	adapter, err := nakama.Dial(dialCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("server dial failed", zap.Error(err))
	}
	defer adapter.Close()

	session := app.Session{GameID: *gameID, PlayerID: adapter.UserID()}
	ui := app.UI{
		PromptDialog:   surface.Dialog("prompt"),
		OptionDialog:   surface.Dialog("option"),
		TokenDialog:    surface.Dialog("token"),
		BurstDialog:    surface.Dialog("burst"),
		GroupDialog:    surface.Dialog("burst-group"),
		BlockerDialog:  surface.Dialog("blocker"),
		SlotPickDialog: surface.Dialog("slot-pick"),
		Bar:            surface.Bar(),
		Board:          surface.Board(),
		Timer:          surface.Timer(),
		Errors:         surface.Errors(),
	}
	opts := app.Options{
		ResubmitWindow: time.Duration(config.GetResubmitWindowMillis()) * time.Millisecond,
		DialogTimeout:  time.Duration(cfg.DialogTimeoutMillis) * time.Millisecond,
	}
	client = app.NewClient(log, adapter, ui, session, opts)
	adapter.SetSink(client)

	log.Info("client running",
		zap.String("gameId", session.GameID),
		zap.String("playerId", session.PlayerID),
	)
	pollInterval := time.Duration(config.GetPollIntervalMillis()) * time.Millisecond
	if err := client.Run(ctx, pollInterval); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("client stopped", zap.Error(err))
	}
}
