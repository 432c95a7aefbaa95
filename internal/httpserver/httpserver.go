package httpserver

import (
	"context"
	"errors"
	"net/http"

	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

// Run serves until ctx is cancelled, then shuts down gracefully.
func (srv *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    srv.addr,
		Handler: srv.gin,
	}

	serveErr := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", srv.addr).Msg("http server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logx.Info().Msg("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("http server shutdown failed")
		return err
	}
	logx.Info().Msg("http server stopped")
	return nil
}
