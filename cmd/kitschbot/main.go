package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kitschlabs/kitschbot/internal/config"
	"github.com/kitschlabs/kitschbot/internal/database"
	"github.com/kitschlabs/kitschbot/internal/discord"
	"github.com/kitschlabs/kitschbot/internal/services/pulse"
	"github.com/kitschlabs/kitschbot/internal/services/scheduler"
	"github.com/kitschlabs/kitschbot/internal/store"
)

func main() {
	if len(os.Args) > 1 {
		os.Exit(runTokenCommand(os.Args[1], os.Args[2:]))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	loc, err := cfg.Location()
	if err != nil {
		sugar.Fatalw("invalid timezone", "error", err)
	}

	token, err := config.ResolveToken(cfg)
	if err != nil {
		sugar.Fatalw("no usable discord token", "error", err)
	}

	db, err := database.Init(cfg.DatabaseURL, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close(db) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := discord.NewClient(token, sugar)

	sched := scheduler.NewService(
		ctx,
		store.NewJobStore(db),
		store.NewEmbedStore(db),
		client,
		loc,
		sugar,
	)
	if err := sched.Start(); err != nil {
		sugar.Fatalw("failed to start scheduler", "error", err)
	}

	pulses := pulse.NewService(ctx, store.NewPulseStore(db), client, sugar)
	if err := pulses.Start(); err != nil {
		sugar.Fatalw("failed to start pulse service", "error", err)
	}

	sugar.Infow("kitschbot running", "timezone", loc.String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sugar.Info("shutting down")
	cancel()
	pulses.Stop()
	sched.Stop()
}

// runTokenCommand handles keychain management: "set-token <token>" stores
// the bot token, "clear-token" removes it. Both run before any config or
// service wiring.
func runTokenCommand(cmd string, args []string) int {
	switch cmd {
	case "set-token":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: kitschbot set-token <token>")
			return 2
		}
		if err := config.StoreToken(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("token stored in keychain")
	case "clear-token":
		if err := config.DeleteToken(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("token removed from keychain")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		return 2
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	return zcfg.Build()
}
