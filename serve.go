package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"tinyboards/internal/config"
	"tinyboards/internal/game"
	"tinyboards/internal/handlers"
	"tinyboards/internal/logging"
	"tinyboards/internal/metrics"
	"tinyboards/internal/queens"
	"tinyboards/internal/storage"
	"tinyboards/internal/templates"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  runServe,
	})
}

// loadConfig reads the config file and lets command line flags override it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}
	if dsnFlag != "" {
		cfg.DSN = dsnFlag
	}
	if levelsFlag != "" {
		cfg.LevelsFile = levelsFlag
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg, nil
}

func loadLevels(path string) (queens.Levels, error) {
	if path == "" {
		return queens.DefaultLevels(), nil
	}
	levels, err := queens.LoadLevels(path)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", path, err)
	}
	return levels, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Setup(os.Stderr, cfg.Debug)
	templates.SetCommit(commit)

	levels, err := loadLevels(cfg.LevelsFile)
	if err != nil {
		return err
	}

	var store *storage.Store
	if dsn := cfg.DatabaseDSN(); dsn != "" {
		db, err := storage.New(dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		store = storage.NewStore(db)
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := game.NewHub(
		game.WithLevels(levels),
		game.WithStore(store),
		game.WithIdleTimeout(cfg.IdleTimeout()),
	)
	go hub.Run(ctx, cfg.SweepInterval())

	h := handlers.NewHandler(hub)
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handlers.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":   srv.Addr,
			"commit": commit,
			"built":  buildDate,
			"levels": len(levels),
			"stored": store != nil,
		}).Info("tinyboards listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
