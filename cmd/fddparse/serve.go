package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/dgallion1/fddparse/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.serveOn(ctx, ln, api.NewServer(a.log, a.cfg))
}

// serveOn serves handler on ln until ctx is cancelled, then drains
// in-flight requests for up to ShutdownTimeout.
func (a *app) serveOn(ctx context.Context, ln net.Listener, handler http.Handler) error {
	httpServer := &http.Server{
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	// Graceful shutdown. Serve returns as soon as Shutdown starts,
	// so wait for done before returning to let in-flight requests drain.
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		a.log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("shutdown incomplete", zap.Error(err))
		}
	}()

	a.log.Info("starting fddparse",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("auth", a.cfg.APIKey != ""),
		zap.String("version", version),
	)
	if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
