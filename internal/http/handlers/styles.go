package handlers

import (
	"net/http"

	"photobooth/internal/styles"
)

type styleResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Styles lists the transform styles the kiosk can offer. Prompts stay
// server side.
func (a *App) Styles(w http.ResponseWriter, r *http.Request) {
	all := styles.List()
	items := make([]styleResponse, 0, len(all))
	for _, s := range all {
		items = append(items, styleResponse{ID: s.ID, DisplayName: s.Name})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
