package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/chessarena/tournament-service/identity"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pinger is the piece of *sql.DB the health handler needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db       Pinger
	resolver identity.Resolver
	started  time.Time
	logger   *slog.Logger
}

func NewHealthHandler(db Pinger, resolver identity.Resolver, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:       db,
		resolver: resolver,
		started:  time.Now(),
		logger:   logger,
	}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	successResponse(w, h.logger, http.StatusOK, "Application is running smoothly", map[string]any{
		"status":    "ok",
		"uptime":    time.Since(h.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness handles GET /ready, probing storage and the identity backend
// in parallel.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.db.PingContext(gCtx)
	})
	g.Go(func() error {
		// A lookup of the nil UUID exercises the whole resolution path
		// without depending on any particular user existing.
		_, err := h.resolver.ResolveNames(gCtx, []string{uuid.Nil.String()})
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Error("readiness probe failed", slog.Any("error", err))
		errorResponse(w, h.logger, http.StatusServiceUnavailable, "a dependency is not ready")
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Ready", map[string]any{"status": "ready"})
}
