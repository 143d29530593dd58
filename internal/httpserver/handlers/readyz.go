package handlers

import (
	"net/http"
	"time"

	"github.com/linktracker/linktracker/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready       bool   `json:"ready"`
	Bookmarks   int    `json:"bookmarks"`
	LastRefresh string `json:"last_refresh"`
}

// Readyz reports the cache state. Startup already verified the backing
// repository, so the process is ready as soon as it serves.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := "never"
		if t := d.Cache.LastRefresh(); !t.IsZero() {
			last = t.Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:       true,
			Bookmarks:   d.Cache.Len(),
			LastRefresh: last,
		})
	}
}
