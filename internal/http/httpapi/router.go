package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"photobooth/internal/http/handlers"
	"photobooth/internal/middleware"
)

// Options carries the cross-cutting knobs the router wires into its
// middleware chain.
type Options struct {
	Log            zerolog.Logger
	AllowedOrigins []string
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	VerifyToken    middleware.TokenVerifier
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	// The access logger goes after RequestID and I18N so the correlation
	// id and resolved locale are in context by the time it runs.
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Logger(opts.Log),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/styles", app.Styles)

	r.Post("/v1/transform", app.Transform)

	r.Route("/v1/events", func(r chi.Router) {
		r.Get("/", app.EventList)
		r.Get("/{event_id}", app.EventGet)
		r.Get("/{event_id}/photos", app.EventPhotos)
		r.Get("/slug/{slug}", app.EventGetBySlug)
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Post("/login", app.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(opts.VerifyToken))
			r.Post("/events", app.EventCreate)
			r.Put("/events/{event_id}", app.EventUpdate)
			r.Delete("/events/{event_id}", app.EventDelete)
			r.Get("/events/{event_id}/export", app.EventExport)
			r.Delete("/photos/{photo_id}", app.PhotoDelete)
			r.Post("/photos/delete", app.PhotosBulkDelete)
		})
	})

	return r
}
