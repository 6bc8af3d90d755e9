package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"leadflare/internal/config"
)

// app carries what every subcommand needs once the root command has run
// its pre-run hook.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	// exitCode is returned to the OS when main returns.
	exitCode int
}

// main is the entry point of the leadflare service. Without a subcommand it
// serves the HTTP API; migrate and seed prepare the store.
func main() {
	a := &app{exitCode: 1}
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(a.exitCode)
		}
	}()

	root := a.rootCmd()
	root.AddCommand(a.serveCmd(), a.migrateCmd(), a.seedCmd())
	if err := root.Execute(); err != nil {
		logger := a.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("command failed", slog.Any("error", err))
	}
}

func (a *app) rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "leadflare",
		Short:         "Lead generation campaign service",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration from environment variables.
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg).With(slog.String("env", cfg.Env))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// newLogger initialises the structured logger based on configuration.
func newLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler
	level := cfg.Log.SlogLevel()
	switch cfg.Log.SlogFormat() {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case "tint":
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
