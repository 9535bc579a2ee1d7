package cmd

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

	"github.com/Seann-Moser/integrations/config"
	"github.com/Seann-Moser/integrations/integration"
	"github.com/Seann-Moser/integrations/integration/airtable"
	"github.com/Seann-Moser/integrations/integration/hubspot"
	"github.com/Seann-Moser/integrations/integration/notion"
	"github.com/Seann-Moser/integrations/server"
	"github.com/Seann-Moser/integrations/state"
	"github.com/Seann-Moser/integrations/store"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the integrations HTTP server",
		Long: `Start the HTTP server that drives the OAuth connect flow.

Providers are registered only when their client id, secret and redirect
URI are configured, e.g.:

  INTEGRATIONS_HUBSPOT_CLIENT_ID
  INTEGRATIONS_HUBSPOT_CLIENT_SECRET
  INTEGRATIONS_HUBSPOT_REDIRECT_URI

State tokens and parked credentials live in redis when
INTEGRATIONS_REDIS_ADDR is reachable, otherwise in process memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "HTTP listen address. Can also use INTEGRATIONS_ADDR env var.")

	return cmd
}

func runServe(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cache := store.Connect(ctx, store.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	states := state.NewManager(cache, cfg.StateTTL)

	providers := buildProviders(cfg)
	if len(providers) == 0 {
		slog.Warn("no providers configured; every flow request will 404")
	}
	svc := integration.NewService(cache, states, cfg.CredentialTTL, providers...)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(svc).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		slog.Info("integrations server listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}
	return nil
}

// buildProviders wires a provider for each complete OAuth client
// registration found in the configuration.
func buildProviders(cfg config.Config) []*integration.Provider {
	var providers []*integration.Provider
	for name, creds := range cfg.Providers {
		var p *integration.Provider
		switch name {
		case "hubspot":
			p = hubspot.Provider(creds.ClientID, creds.ClientSecret, creds.RedirectURI, creds.Scopes)
		case "notion":
			p = notion.Provider(creds.ClientID, creds.ClientSecret, creds.RedirectURI, creds.Scopes)
		case "airtable":
			p = airtable.Provider(creds.ClientID, creds.ClientSecret, creds.RedirectURI, creds.Scopes)
		default:
			slog.Warn("ignoring unknown provider in configuration", "provider", name)
			continue
		}
		slog.Info("provider registered", "provider", name)
		providers = append(providers, p)
	}
	return providers
}
