/*
serve.go - reporting server command

PURPOSE:
  Starts the HTTP server over the stored compliance results. Reads
  BREAKCHECK_-prefixed environment variables for deployment settings
  and shuts down gracefully on SIGINT/SIGTERM.

STARTUP SEQUENCE:
  1. Load environment configuration
  2. Resolve the break policy (document file or built-in)
  3. Open the SQLite store
  4. Wire handler, runner and router
  5. Serve until interrupted, then drain with a timeout
*/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goldenvalley/breakcheck/api"
	"github.com/goldenvalley/breakcheck/config"
	"github.com/goldenvalley/breakcheck/pipeline"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the compliance reporting HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Flags override the environment when set explicitly.
		policyPath := cfg.Policy.File
		if policyFile != "" {
			policyPath = policyFile
		}
		databasePath := cfg.Database.Path
		if cmd.InheritedFlags().Changed("db") {
			databasePath = dbPath
		}

		breakPolicy, err := loadPolicy(policyPath)
		if err != nil {
			return err
		}

		store, err := sqlite.New(databasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		runner, err := pipeline.NewRunner(breakPolicy, store, logger)
		if err != nil {
			return err
		}

		handler := api.NewHandler(store, runner, logger)
		server := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      api.NewRouter(handler),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting",
				zap.String("addr", server.Addr),
				zap.String("db", databasePath),
				zap.String("environment", cfg.Environment),
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}
