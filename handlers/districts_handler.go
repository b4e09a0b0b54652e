package handlers

import (
	"net/http"
	"time"

	"github.com/Dozzergeeky/mgnrega-insights/config"
	"github.com/Dozzergeeky/mgnrega-insights/mgnrega"
	"github.com/Dozzergeeky/mgnrega-insights/models"
)

type DistrictsResponse struct {
	State     string            `json:"state"`
	Count     int               `json:"count"`
	Districts []models.District `json:"districts"`
	Timestamp string            `json:"timestamp"`
}

// DistrictsHandler serves the district reference list from the tiered
// source. Reference data is effectively immutable, so responses sit in
// a long-lived cache.
type DistrictsHandler struct {
	Districts mgnrega.DistrictLister
	Caches    *config.Caches
}

func (h *DistrictsHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	cacheKey := config.CacheKey("districts", "all")
	if h.Caches != nil {
		if cached, found := h.Caches.Districts.Get(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	districts := h.Districts.ListDistricts(r.Context())

	state := ""
	if len(districts) > 0 {
		state = districts[0].StateName
	}

	response := DistrictsResponse{
		State:     state,
		Count:     len(districts),
		Districts: districts,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.Caches != nil {
		h.Caches.Districts.SetDefault(cacheKey, response)
	}
	writeJSON(w, http.StatusOK, response)
}
