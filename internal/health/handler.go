// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

type Checker interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reports how many products are loaded. Readiness includes
// it so an empty catalog after a failed seed is visible from probes.
type CatalogCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	db       Checker
	redis    Checker
	catalog  CatalogCounter
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Checker, catalog CatalogCounter) *Handler {
	h := &Handler{db: db, redis: redis, catalog: catalog}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, statusResponse{
			Status: "shutting_down",
		})
		return
	}

	writeStatus(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, statusResponse{
			Status: "shutting_down",
		})
		return
	}

	if !h.ready.Load() {
		writeStatus(w, http.StatusServiceUnavailable, statusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)

	status := "ok"
	statusCode := http.StatusOK
	for _, check := range checks {
		if !check.Healthy {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	var catalogSize *int64
	if h.catalog != nil {
		if count, err := h.catalog.Count(ctx); err == nil {
			catalogSize = &count
		}
	}

	writeStatus(w, statusCode, readinessResponse{
		Status:      status,
		Checks:      checks,
		CatalogSize: catalogSize,
	})
}

func (h *Handler) runChecks(ctx context.Context) []check {
	var wg sync.WaitGroup
	checks := make([]check, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		checks[0] = runCheck(ctx, "database", h.db)
	}()
	go func() {
		defer wg.Done()
		checks[1] = runCheck(ctx, "redis", h.redis)
	}()
	wg.Wait()

	return checks
}

func runCheck(ctx context.Context, name string, c Checker) check {
	result := check{Name: name, Healthy: true}

	if c == nil {
		result.Healthy = false
		result.Message = "checker not configured"
		return result
	}

	start := time.Now()
	err := c.Ping(ctx)
	result.Latency = time.Since(start).String()

	if err != nil {
		result.Healthy = false
		result.Message = "ping failed"
	}

	return result
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

type statusResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status      string  `json:"status"`
	Checks      []check `json:"checks"`
	CatalogSize *int64  `json:"catalog_size,omitempty"`
}

type check struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
