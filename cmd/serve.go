package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"leadflare/internal/adapter/ai"
	httpadapter "leadflare/internal/adapter/http"
	"leadflare/internal/adapter/usecase"
	"leadflare/internal/config/configs"
	"leadflare/internal/core/port"
	"leadflare/internal/db"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve opens the store, wires the use cases and starts the HTTP server.
// On receiving a termination signal it gracefully shuts down the server.
func (a *app) serve(ctx context.Context) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	if a.cfg.Store.Seed {
		if err = db.Seed(ctx, st.campaigns, st.leads); err != nil {
			a.logger.Error("seed error", slog.Any("error", err))
		}
	}

	creatives, err := a.creativeUseCase(ctx)
	if err != nil {
		return err
	}

	handler := httpadapter.NewHandler(httpadapter.UseCases{
		Budget:    usecase.NewBudgetUseCase(),
		Campaigns: usecase.NewCampaignUseCase(st.campaigns, a.logger),
		Leads:     usecase.NewLeadUseCase(st.leads, st.campaigns, a.logger),
		Creatives: creatives,
	}, a.logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: a.cfg.HTTP.ReadHeaderTimeout,
	}

	code, err := runServer(srv, quit, a.cfg.HTTP.ShutdownTimeout, a.logger)
	a.exitCode = code
	return err
}

// runServer serves until a signal arrives on quit or the listener fails. A
// signal shuts the server down gracefully and yields the conventional
// 128+signal exit code.
func runServer(srv *http.Server, quit <-chan os.Signal, timeout time.Duration, logger *slog.Logger) (int, error) {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var value os.Signal
	select {
	case value = <-quit:
	case err := <-errCh:
		return 1, fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}

	code := 1
	if sig, ok := value.(syscall.Signal); ok {
		code = 128 + int(sig)
	}
	return code, nil
}

// creativeUseCase builds the text provider chain from configuration. Gemini
// is tried first, then the OpenAI-compatible API, which also serves images.
// Providers without an API key are skipped.
func (a *app) creativeUseCase(ctx context.Context) (*usecase.CreativeUseCase, error) {
	var (
		text   []port.TextGenerator
		images port.ImageGenerator
		cfg    configs.AI = a.cfg.AI
	)

	if cfg.GeminiAPIKey != "" {
		g, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		text = append(text, g)
	}

	if cfg.OpenAIAPIKey != "" {
		o, err := ai.NewOpenAI(ai.OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ChatModel:  cfg.OpenAIChatModel,
			ImageModel: cfg.OpenAIImageModel,
			Timeout:    cfg.Timeout,
			RetryMax:   cfg.RetryMax,
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("openai: %w", err)
		}
		text = append(text, o)
		images = o
	}

	if len(text) == 0 {
		a.logger.Warn("no AI provider configured, creatives use built-in copy")
	}
	return usecase.NewCreativeUseCase(text, images, a.logger), nil
}
