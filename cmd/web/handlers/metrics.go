package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

type MetricsContract interface {
	Snapshot() map[string]int64
}

type Metrics struct {
	metrics MetricsContract
}

func NewMetrics(metricsSvc MetricsContract) *Metrics {
	return &Metrics{metrics: metricsSvc}
}

func (h *Metrics) Get(w http.ResponseWriter, r *http.Request) {
	if err := json.NewEncoder(w).Encode(h.metrics.Snapshot()); err != nil {
		log.Printf("layer=handler component=metrics method=Get err=%v", err)
	}
}
