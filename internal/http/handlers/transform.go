package handlers

import (
	"encoding/json"
	"net/http"

	"photobooth/internal/middleware"
	"photobooth/internal/pipeline"
)

type transformRequest struct {
	ImageBase64 string `json:"imageBase64"`
	StyleID     string `json:"styleId"`
	EventID     string `json:"eventId"`
}

type transformResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Transform is the kiosk-facing operation: capture in, public image URL out.
// Everything between is the pipeline.
func (a *App) Transform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_argument", "invalid payload")
		return
	}

	clientIP := middleware.ClientIP(r)
	log := a.Log.With().
		Str("event_id", req.EventID).
		Str("style_id", req.StyleID).
		Str("client_ip", clientIP).
		Str("country", middleware.CountryFromContext(r.Context())).
		Logger()

	imageURL, err := a.Pipeline.Transform(r.Context(), pipeline.TransformRequest{
		ImageBase64: req.ImageBase64,
		StyleID:     req.StyleID,
		EventID:     req.EventID,
	}, clientIP)
	if err != nil {
		log.Warn().Err(err).Msg("transform rejected")
		a.domainError(w, err)
		return
	}

	a.json(w, http.StatusOK, transformResponse{ImageURL: imageURL})
}
