package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	chathttp "github.com/OFTGNOV/Sa-helper-bot/internal/agent/delivery/http"
	"github.com/OFTGNOV/Sa-helper-bot/internal/httpserver"
	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

func newServeCmd(config func() AppConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config()
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			lim, err := middleware.NewLimiter(cfg.RateLimit, a.rdb)
			if err != nil {
				return err
			}
			if cfg.AdminToken == "" {
				logx.Warn().Msg("ADMIN_TOKEN is empty; admin routes will reject every request")
			}

			srv, err := httpserver.New(httpserver.Config{
				Addr:           cfg.HTTPAddr,
				Mode:           cfg.env().GinMode(),
				TrustedProxies: cfg.TrustedProxies,
				Chat:           chathttp.New(a.engine, a.feedback),
				Middleware:     middleware.New(cfg.AdminToken, lim),
				Ready:          a.ready,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
