package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookx-web/internal/http/respond"
)

// Pinger checks that the exchange API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and API reachability.
type HealthHandler struct {
	startedAt time.Time
	api       Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, api Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, api: api}
}

// Register wires the handler into the router.
func (h *HealthHandler) Register(r *mux.Router) {
	r.HandleFunc(RouteHealth, h.handle).Methods(http.MethodGet)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code, api := "ok", http.StatusOK, "reachable"
	if err := h.api.Ping(ctx); err != nil {
		status, code, api = "degraded", http.StatusServiceUnavailable, "unreachable"
	}
	respond.JSON(w, code, status, map[string]string{
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
		"api":    api,
	})
}
