package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"dota-gsi-assistant/internal/config"
	"dota-gsi-assistant/internal/gamestate"
	"dota-gsi-assistant/internal/gsiconfig"
	"dota-gsi-assistant/internal/server"
	"dota-gsi-assistant/internal/snapshots"
)

type App struct {
	config     *config.Config
	store      *gamestate.Store
	archive    *snapshots.Archive
	httpServer *http.Server
}

func NewApp(_ context.Context, cfg *config.Config) (*App, error) {
	store, err := gamestate.NewStore(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("creating state store: %w", err)
	}

	var archive *snapshots.Archive
	if cfg.SnapshotDB != "" {
		archive, err = snapshots.Open(cfg.SnapshotDB, cfg.SnapshotInterval)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot archive: %w", err)
		}
		slog.Info("Snapshot archiving enabled", "db", cfg.SnapshotDB, "interval", cfg.SnapshotInterval)
	}

	if cfg.GSIConfigPath != "" {
		if err := gsiconfig.Write(cfg.GSIConfigPath, cfg.Host, cfg.Port, cfg.AuthToken); err != nil {
			slog.Warn("Could not write GSI integration file", "path", cfg.GSIConfigPath, "error", err)
		} else {
			slog.Info("GSI integration file written", "path", cfg.GSIConfigPath)
		}
	}

	var archiver server.Archiver
	if archive != nil {
		archiver = archive
	}
	srv := server.New(store, archiver, cfg.AuthToken, cfg.RequestTimeout)

	return &App{
		config:  cfg,
		store:   store,
		archive: archive,
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      srv.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}, nil
}

func (a *App) Run() error {
	slog.Info("GSI server listening", "addr", a.httpServer.Addr)

	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped unexpectedly", "error", err)
		}
	}()

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
