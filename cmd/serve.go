package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/ytpl/internal/server"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 30 * time.Second

// Serve starts the HTTP server and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("static") {
		config.Server.StaticDir = cmd.String("static")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.Credentials.YouTube.APIKey == "" {
		r.logger.Warn("YouTube API key not configured, playlist requests will fail until YOUTUBE_API_KEY is set")
	}

	ln, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Server.Addr(), err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.serve(ctx, ln, config.Server.StaticDir)
}

// serve runs the app router on ln until ctx is done, then drains in-flight requests.
func (r *Runner) serve(ctx context.Context, ln net.Listener, staticDir string) error {
	handler := server.NewAppRouter(r.playlistFetcher(), staticDir, r.logger)
	srv := server.NewServer(ln.Addr().String(), handler, r.logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
