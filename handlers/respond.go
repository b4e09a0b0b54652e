// Package handlers contains the HTTP layer. Each handler is a struct
// holding its injected dependencies; response shapes are declared next
// to the handler that serves them.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// Source tags let the UI and tests tell real data from the synthetic
// fallbacks apart.
const (
	sourceRealData         = "real_data"
	sourceMixedData        = "mixed_data"
	sourceMockData         = "mock_data"
	sourceMockDataFallback = "mock_data_fallback"
)

// MetricsReader is the read side of the metrics store, as seen by the
// dashboard and history handlers.
type MetricsReader interface {
	FindLatest(ctx context.Context, districtCode string) (*models.DistrictMetricDocument, error)
	FindPeriods(ctx context.Context, districtCode string, periods []string) ([]models.DistrictMetricDocument, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
