package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"photobooth/internal/domain"
	"photobooth/internal/middleware"
	"photobooth/internal/ratelimit"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// AdminLogin exchanges the admin password for a session token. Attempts are
// rate limited per client address before the password is even looked at.
func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	clientIP := middleware.ClientIP(r)
	if err := a.Limiter.CheckAndRecord(r.Context(), ratelimit.LoginKey(clientIP), ratelimit.LoginLimit); err != nil {
		a.domainError(w, err)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		a.error(w, http.StatusBadRequest, "invalid_argument", "password is required")
		return
	}

	token, ok := a.Auth.Login(req.Password)
	if !ok {
		a.Log.Warn().Str("client_ip", clientIP).Msg("admin login rejected")
		a.error(w, http.StatusForbidden, "permission_denied", "invalid password")
		return
	}
	a.json(w, http.StatusOK, loginResponse{Token: token})
}

type eventPayload struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Date      string `json:"date"`
	IsActive  *bool  `json:"isActive"`
	Theme     string `json:"theme"`
	MaxPhotos *int   `json:"maxPhotos"`
}

type eventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Date      time.Time `json:"date"`
	IsActive  bool      `json:"isActive"`
	Theme     string    `json:"theme"`
	MaxPhotos *int      `json:"maxPhotos,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Slug:      e.Slug,
		Date:      e.Date,
		IsActive:  e.IsActive,
		Theme:     e.Theme,
		MaxPhotos: e.MaxPhotos,
		CreatedAt: e.CreatedAt,
	}
}

// checkAdminRate applies the per-credential window for admin mutations.
func (a *App) checkAdminRate(w http.ResponseWriter, r *http.Request) bool {
	token := middleware.AdminToken(r)
	if err := a.Limiter.CheckAndRecord(r.Context(), ratelimit.AdminKey(token), ratelimit.AdminLimit); err != nil {
		a.domainError(w, err)
		return false
	}
	return true
}

func (a *App) EventCreate(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}

	var req eventPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_argument", "invalid payload")
		return
	}
	if req.Name == "" || req.Slug == "" || req.Date == "" {
		a.error(w, http.StatusBadRequest, "invalid_argument", "name, slug, and date are required")
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_argument", "date must be RFC 3339")
		return
	}

	event := &domain.Event{
		Name:      req.Name,
		Slug:      req.Slug,
		Date:      date,
		IsActive:  true,
		Theme:     "default",
		MaxPhotos: req.MaxPhotos,
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.Theme != "" {
		event.Theme = req.Theme
	}

	if err := a.Events.Create(r.Context(), event); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"eventId": event.ID})
}

func (a *App) EventUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}

	eventID := chi.URLParam(r, "event_id")
	event, err := a.Events.GetByID(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	var req eventPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_argument", "invalid payload")
		return
	}
	if req.Name != "" {
		event.Name = req.Name
	}
	if req.Slug != "" {
		event.Slug = req.Slug
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			a.error(w, http.StatusBadRequest, "invalid_argument", "date must be RFC 3339")
			return
		}
		event.Date = date
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.Theme != "" {
		event.Theme = req.Theme
	}
	if req.MaxPhotos != nil {
		event.MaxPhotos = req.MaxPhotos
	}

	if err := a.Events.Update(r.Context(), event); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEventResponse(event))
}

func (a *App) EventDelete(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}
	if err := a.Events.Delete(r.Context(), chi.URLParam(r, "event_id")); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) EventGet(w http.ResponseWriter, r *http.Request) {
	event, err := a.Events.GetByID(r.Context(), chi.URLParam(r, "event_id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEventResponse(event))
}

func (a *App) EventGetBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := a.Events.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEventResponse(event))
}

func (a *App) EventList(w http.ResponseWriter, r *http.Request) {
	events, err := a.Events.ListActive(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]eventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
