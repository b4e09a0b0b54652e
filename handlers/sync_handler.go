package handlers

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Dozzergeeky/mgnrega-insights/config"
	"github.com/Dozzergeeky/mgnrega-insights/mgnrega"
)

// schedulerHeader is set by the trusted cron scheduler. Its value must
// match SCHEDULER_TOKEN; a bearer token matching SYNC_SECRET works too.
const schedulerHeader = "X-Scheduler-Token"

// SyncHandler is the authenticated on-demand sync trigger. One POST
// syncs the current calendar month across every district, immediately,
// and returns the run summary.
type SyncHandler struct {
	Syncer *mgnrega.Syncer
	Cfg    config.Config
	Caches *config.Caches
}

func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Cfg.ValidateAPIConfig(); err != nil {
		if errors.Is(err, config.ErrMissingAPIConfig) {
			writeError(w, http.StatusBadRequest, "MGNREGA_API_KEY and MGNREGA_RESOURCE_ID must be set")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.Syncer == nil {
		writeError(w, http.StatusServiceUnavailable, "Metrics store unavailable; sync cannot run")
		return
	}

	summary := h.Syncer.SyncCurrentMonth(r.Context())
	log.Printf("Sync run %s finished: %d/%d districts synced, %d failures",
		summary.RunID, summary.Successes, summary.TotalDistricts, summary.Failures)

	// Fresh documents landed; cached snapshots are stale now.
	if h.Caches != nil {
		h.Caches.Dashboard.Flush()
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *SyncHandler) authorized(r *http.Request) bool {
	if token := r.Header.Get(schedulerHeader); token != "" && secureEqual(token, h.Cfg.SchedulerToken) {
		return true
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		bearer := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if bearer != "" && secureEqual(bearer, h.Cfg.SyncSecret) {
			return true
		}
	}

	return false
}

// secureEqual compares a presented credential against the configured
// secret in constant time. An unset secret never matches.
func secureEqual(presented, secret string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
