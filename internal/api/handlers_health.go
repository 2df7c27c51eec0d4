package api

import (
	"net/http"

	"github.com/livp123/suriwatch/internal/version"
)

// handleHealthz reports liveness and the cache state.
// handleHealthz 返回存活状态和缓存状态。
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	stats := s.cache.Stats()
	resp := map[string]any{
		"status": "ok",
		"alerts": stats.Alerts,
		"dates":  len(stats.Dates),
	}
	if !stats.BuiltAt.IsZero() {
		resp["built_at"] = stats.BuiltAt
	}
	if !stats.LastRefresh.IsZero() {
		resp["last_refresh"] = stats.LastRefresh
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

// handleVersion returns the build version.
// handleVersion 返回构建版本。
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"version": version.Version})
}

func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(uiHTML))
}
