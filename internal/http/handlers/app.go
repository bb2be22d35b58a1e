package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"photobooth/internal/auth"
	"photobooth/internal/domain"
	"photobooth/internal/pipeline"
	"photobooth/internal/ratelimit"
	"photobooth/internal/storage"
)

// App bundles the dependencies of all HTTP handlers.
type App struct {
	Log      zerolog.Logger
	Events   domain.EventRepository
	Photos   domain.PhotoRepository
	Limiter  *ratelimit.Limiter
	Pipeline *pipeline.Pipeline
	Auth     *auth.TokenIssuer
	Store    storage.ObjectStore

	// Ping reports database reachability for the health endpoint. Nil
	// skips the check.
	Ping func(ctx context.Context) error

	// Fetch is used to read photo bytes back for exports. Nil falls back
	// to http.DefaultClient.
	Fetch *http.Client
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Code: code, Message: message})
}

// domainError maps a taxonomy error onto its HTTP representation.
func (a *App) domainError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.WrapError(err, "unexpected failure")
	}
	a.error(w, httpStatus(de.Code), string(de.Code), userMessage(de))
}

func httpStatus(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeFailedPrecondition:
		return http.StatusConflict
	case domain.CodeResourceExhausted:
		return http.StatusTooManyRequests
	case domain.CodeProcessingFailed:
		return http.StatusUnprocessableEntity
	case domain.CodeTimeout:
		return http.StatusGatewayTimeout
	case domain.CodeUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage keeps upstream bodies and internal details out of responses;
// only the classified message reaches the kiosk.
func userMessage(de *domain.Error) string {
	switch de.Code {
	case domain.CodeUpstreamError, domain.CodeInternal:
		return "failed to process image, please try again"
	default:
		return de.Message
	}
}
