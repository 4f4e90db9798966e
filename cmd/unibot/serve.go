package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MuhammadAbbas01/unibot"
	unibothttp "github.com/MuhammadAbbas01/unibot/http"
	unislog "github.com/MuhammadAbbas01/unibot/slog"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It stops on SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []unibothttp.ServerOption{
		unibothttp.WithConnector(deps.Connect),
		unibothttp.WithLogger(deps.Logger),
		unibothttp.WithDefaultMaxPages(c.MaxPages),
	}
	if deps.Assistant != nil {
		opts = append(opts, unibothttp.WithAssistant(deps.Assistant))
	}
	if deps.Metrics != nil {
		opts = append(opts,
			unibothttp.WithMetricsHandler(deps.Metrics.Handler()),
			unibothttp.WithMiddleware(deps.Metrics.Middleware),
		)
	}

	var scraper unibot.Scraper
	if deps.Crawler != nil {
		scraper = unislog.NewLoggingScraper(deps.Crawler, deps.Logger)
	}
	server := unibothttp.NewServer(scraper, opts...)
	defer server.Close()

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", c.Addr, err)
	}
	httpServer := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", ln.Addr())
	if deps.Assistant == nil {
		fmt.Fprintln(deps.Stdout, "No knowledge base yet. POST /api/scrape to build one.")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
