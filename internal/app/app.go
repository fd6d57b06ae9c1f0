// Package app wires the fetcher, sidebar and HTTP API into a running
// server.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/navtree/internal/api"
	"github.com/dgallion1/navtree/internal/config"
	"github.com/dgallion1/navtree/internal/contents"
	"github.com/dgallion1/navtree/internal/sidebar"
)

const shutdownTimeout = 10 * time.Second

// App holds the long-lived components of one server process.
type App struct {
	cfg     config.Config
	log     *slog.Logger
	client  *contents.Client
	fetcher *contents.Fetcher
	sidebar *sidebar.Context
	handler http.Handler
}

func New(cfg config.Config, log *slog.Logger) *App {
	client := contents.NewClient(cfg.ContentsURL, cfg.HTTPTimeout)
	stats := contents.NewStats(cfg.StatsWindow)
	fetcher := contents.NewFetcher(client, cfg.RetryPolicy(), stats, log.With("component", "fetcher", "url", cfg.ContentsURL))
	sb := sidebar.New(cfg.FilterDebounce)

	return &App{
		cfg:     cfg,
		log:     log,
		client:  client,
		fetcher: fetcher,
		sidebar: sb,
		handler: api.NewServer(fetcher, stats, sb, log, cfg),
	}
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Fetcher returns the contents fetcher.
func (a *App) Fetcher() *contents.Fetcher {
	return a.fetcher
}

// Run serves on cfg.Port and loads the contents document in the
// background. It returns after ctx is cancelled and the server drained.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	defer a.client.Close()

	httpServer := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("starting navtree", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		a.fetcher.Fetch(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down...")
		a.sidebar.ClearFilter()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
