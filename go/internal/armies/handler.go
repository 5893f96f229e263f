package armies

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
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// ArmiesApp defines what the handler needs from the armies application
type ArmiesApp interface {
	JoinLeague(ctx context.Context, userID uuid.UUID, token string, req JoinLeagueRequest) (*models.Army, error)
	LeaveLeague(ctx context.Context, userID, leagueID uuid.UUID) error
	UpdateArmy(ctx context.Context, userID, armyID uuid.UUID, req UpdateArmyRequest) (*models.Army, error)
	GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error)
	ListByLeague(ctx context.Context, userID, leagueID uuid.UUID) ([]models.Army, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error)
}

// Handler exposes army membership operations over HTTP.
type Handler struct {
	app    ArmiesApp
	logger zerolog.Logger
}

// NewHandler creates a new armies Handler
func NewHandler(app ArmiesApp, logger zerolog.Logger) *Handler {
	return &Handler{app: app, logger: logger}
}

// Mount registers the army routes on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Post("/join/{token}", h.Join)
	r.Post("/leagues/{leagueID}/leave", h.Leave)
	r.Get("/leagues/{leagueID}/armies", h.ListByLeague)
	r.Get("/armies/mine", h.ListMine)
	r.Put("/armies/{armyID}", h.Update)
}

// Join handles POST /join/{token}.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	token := chi.URLParam(r, "token")

	var req JoinLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	army, err := h.app.JoinLeague(r.Context(), caller.UserID, token, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, army)
}

// Leave handles POST /leagues/{leagueID}/leave.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
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

	if err := h.app.LeaveLeague(r.Context(), caller.UserID, leagueID); err != nil {
		h.respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByLeague handles GET /leagues/{leagueID}/armies.
func (h *Handler) ListByLeague(w http.ResponseWriter, r *http.Request) {
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

	armies, err := h.app.ListByLeague(r.Context(), caller.UserID, leagueID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"armies": armies})
}

// ListMine handles GET /armies/mine.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	armies, err := h.app.ListMine(r.Context(), caller.UserID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"armies": armies})
}

// Update handles PUT /armies/{armyID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	armyID, err := uuid.Parse(chi.URLParam(r, "armyID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid army id")
		return
	}

	var req UpdateArmyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	army, err := h.app.UpdateArmy(r.Context(), caller.UserID, armyID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, army)
}

func (h *Handler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrArmyNotFound), errors.Is(err, leagues.ErrLeagueNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDuplicateMembership):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidArmy), errors.Is(err, ErrInvalidAllegiance):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error().Err(err).Msg("army request failed")
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
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
