package standings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/identity"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/rs/zerolog"
)

// StandingsApp defines what the handler needs from the standings application
type StandingsApp interface {
	Compute(ctx context.Context, userID, leagueID uuid.UUID) ([]Row, error)
}

// Handler exposes league standings over HTTP.
type Handler struct {
	app    StandingsApp
	logger zerolog.Logger
}

// NewHandler creates a new standings Handler
func NewHandler(app StandingsApp, logger zerolog.Logger) *Handler {
	return &Handler{app: app, logger: logger}
}

// Mount registers the standings route on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/leagues/{leagueID}/standings", h.Get)
}

// Get handles GET /leagues/{leagueID}/standings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	rows, err := h.app.Compute(r.Context(), caller.UserID, leagueID)
	if err != nil {
		switch {
		case errors.Is(err, leagues.ErrLeagueNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, authz.ErrForbidden):
			h.respondError(w, http.StatusForbidden, err.Error())
		default:
			h.logger.Error().Err(err).Msg("standings request failed")
			h.respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"standings": rows})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
