// Package httpserver wires the gin engine, system routes, and the chat transport.
package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	chathttp "github.com/OFTGNOV/Sa-helper-bot/internal/agent/delivery/http"
	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
)

const DefaultShutdownTimeout = 15 * time.Second

type HTTPServer struct {
	gin             *gin.Engine
	addr            string
	shutdownTimeout time.Duration

	chat  chathttp.Handler
	mw    middleware.Middleware
	ready func() error
}

type Config struct {
	Addr string
	// Mode is a gin mode: debug, release or test.
	Mode            string
	ShutdownTimeout time.Duration
	// TrustedProxies lists proxy addresses or CIDRs whose X-Forwarded-For is
	// honoured. Empty means the client IP is always the socket peer.
	TrustedProxies []string

	Chat       chathttp.Handler
	Middleware middleware.Middleware
	// Ready reports whether backing stores are reachable. Optional.
	Ready func() error
}

func New(cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	srv := &HTTPServer{
		gin:             gin.New(),
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		chat:            cfg.Chat,
		mw:              cfg.Middleware,
		ready:           cfg.Ready,
	}
	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	srv.mapHandlers()
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.addr == "" {
		return errors.New("addr is required")
	}
	if srv.chat == nil {
		return errors.New("chat handler is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
