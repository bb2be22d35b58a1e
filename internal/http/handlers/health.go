package handlers

import "net/http"

// Health reports liveness plus database reachability. Kiosks poll it before
// opening a session, so a dead database surfaces before the first upload
// rather than as a failed transform.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if a.Ping != nil {
		if err := a.Ping(r.Context()); err != nil {
			a.Log.Error().Err(err).Msg("health check: database unreachable")
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			a.json(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
	}
	a.json(w, http.StatusOK, resp)
}
