package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/health"
)

type HealthContract interface {
	Check(ctx context.Context) health.Result
}

type Health struct {
	health HealthContract
}

func NewHealth(healthSvc HealthContract) *Health {
	return &Health{health: healthSvc}
}

func (h *Health) Get(w http.ResponseWriter, r *http.Request) {
	res := h.health.Check(r.Context())
	status := "up"
	if !res.OK {
		status = "down"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(map[string]any{"status": status, "checks": res.Checks}); err != nil {
		log.Printf("layer=handler component=health method=Get err=%v", err)
	}
}
