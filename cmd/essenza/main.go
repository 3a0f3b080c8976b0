package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/essenza/backend/internal/application/engine"
	"github.com/essenza/backend/internal/infrastructure/config"
	"github.com/essenza/backend/internal/infrastructure/logger"
	"github.com/essenza/backend/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting essenza engine",
		zap.Int("currentYear", cfg.App.CurrentYear),
		zap.String("database", cfg.Database.Path),
	)

	store, err := persistence.OpenSnapshotStore(cfg.Database.Path, cfg.Database.KeepSnapshots)
	if err != nil {
		log.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state, found, err := store.LoadLatest(ctx)
	if err != nil {
		log.Fatal("failed to load latest snapshot", zap.Error(err))
	}
	if !found {
		log.Info("no snapshot found, seeding empty state", zap.Int("year", cfg.App.CurrentYear))
		state = engine.NewState(cfg.App.CurrentYear)
		if err := store.SaveSnapshot(ctx, state); err != nil {
			log.Fatal("failed to seed initial snapshot", zap.Error(err))
		}
	}

	session := engine.NewSession(state, store, log)

	log.Info("session ready",
		zap.Int("years", len(session.State().Years)),
		zap.Int("partners", len(session.State().Partners)),
	)

	<-ctx.Done()
	log.Info("shutting down")
	os.Exit(0)
}
