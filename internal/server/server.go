package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/config"
	"github.com/hongminglow/bookx-web/internal/http/handlers"
	"github.com/hongminglow/bookx-web/internal/http/views"
	"github.com/hongminglow/bookx-web/internal/middleware"
	"github.com/hongminglow/bookx-web/internal/session"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, api *backend.Client, sessions session.Store) (*Server, error) {
	handler, err := NewHandler(cfg, api, sessions)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.APITimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// NewHandler builds the routed handler with its middleware chain.
func NewHandler(cfg config.Config, api *backend.Client, sessions session.Store) (http.Handler, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	handlers.NewHealthHandler(time.Now(), api).Register(router)
	handlers.NewAuthHandler(sessions, api, renderer).Register(router)
	handlers.NewPageHandler(sessions, api, renderer, cfg.PageSize).Register(router)

	return middleware.Recover(middleware.RequestID(middleware.Logging(router))), nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
