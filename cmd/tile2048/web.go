package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Princic-1837592/2048/internal/transport/websocket"
	"github.com/Princic-1837592/2048/internal/wire"
)

var (
	flagHTTPAddr string
	flagOrigins  []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browser front-ends",
	Long: `Serve games to browser front-ends.

Routes:
  GET /ws       One game per connection (?player=name labels saved scores)
  GET /scores   Top scores as JSON (?board=4x4&limit=10)
  GET /healthz  Liveness probe

Each WebSocket text message is one command: U/D/L/R to push, Z to undo,
? for the state, "N h w hist [seed]" for a new game, or the same as JSON,
e.g. {"op":"push","direction":"left"}. Every reply is a JSON response
carrying the new state.

Examples:
  tile2048 web
  tile2048 web --addr :9000 --origin https://play.example.com`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (host:port)")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Allowed browser origin (repeatable; empty allows any)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.HTTPAddress = flagHTTPAddr
	}
	if flags.Changed("origin") {
		cfg.Server.AllowedOrigins = flagOrigins
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	logger = logger.WithPrefix("tile2048-web")

	opts := websocket.Options{
		Defaults: wire.Defaults{
			Height:     cfg.Board.Height,
			Width:      cfg.Board.Width,
			MaxHistory: cfg.Board.MaxHistory,
			Seed:       cfg.Board.Seed,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeoutMin) * time.Minute,
		Logger:         logger,
	}
	if store := openStore(cfg.Storage.DBPath, logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddress,
		Handler:           websocket.NewServer(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	logger.Info("starting HTTP server", "address", srv.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
