package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Mongo     string `json:"mongo"`
	Postgres  string `json:"postgres"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message,omitempty"`
}

// HealthHandler reports store reachability. Mongo holds the metric
// documents, so an unreachable Mongo degrades the service to synthetic
// data and the check reports 503; Postgres only backs the district
// reference tier and merely degrades the chain.
type HealthHandler struct {
	Mongo *mongo.Client
	DB    *sql.DB
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Mongo:     "connected",
		Postgres:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.Mongo == nil {
		response.Mongo = "not_configured"
		response.Status = "error"
		status = http.StatusServiceUnavailable
	} else if err := h.Mongo.Ping(ctx, nil); err != nil {
		response.Mongo = "unreachable"
		response.Status = "error"
		response.Message = err.Error()
		status = http.StatusServiceUnavailable
	}

	if h.DB == nil {
		response.Postgres = "not_configured"
		if response.Status == "ok" {
			response.Status = "degraded"
		}
	} else if err := h.DB.PingContext(ctx); err != nil {
		response.Postgres = "unreachable"
		if response.Status == "ok" {
			response.Status = "degraded"
		}
	}

	writeJSON(w, status, response)
}
