package battles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/identity"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// defaultListLimit bounds the ledger listing; the league detail page shows
// the most recent battles.
const defaultListLimit = 50

// BattlesApp defines what the handler needs from the battles application
type BattlesApp interface {
	RecordBattle(ctx context.Context, userID, leagueID uuid.UUID, req RecordBattleRequest) (*models.Battle, error)
	UpdateBattle(ctx context.Context, userID, battleID uuid.UUID, req UpdateBattleRequest) (*models.Battle, error)
	DeleteBattle(ctx context.Context, userID, battleID uuid.UUID) error
	ListBattles(ctx context.Context, userID, leagueID uuid.UUID, limit int) ([]BattleRow, error)
}

// Handler exposes battle ledger operations over HTTP.
type Handler struct {
	app    BattlesApp
	logger zerolog.Logger
}

// NewHandler creates a new battles Handler
func NewHandler(app BattlesApp, logger zerolog.Logger) *Handler {
	return &Handler{app: app, logger: logger}
}

// Mount registers the battle routes on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/leagues/{leagueID}/battles", h.List)
	r.Post("/leagues/{leagueID}/battles", h.Record)
	r.Put("/battles/{battleID}", h.Update)
	r.Delete("/battles/{battleID}", h.Delete)
}

// Record handles POST /leagues/{leagueID}/battles.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
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

	var req RecordBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	battle, err := h.app.RecordBattle(r.Context(), caller.UserID, leagueID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, battle)
}

// List handles GET /leagues/{leagueID}/battles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	rows, err := h.app.ListBattles(r.Context(), caller.UserID, leagueID, limit)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"battles": rows})
}

// Update handles PUT /battles/{battleID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	battleID, err := uuid.Parse(chi.URLParam(r, "battleID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid battle id")
		return
	}

	var req UpdateBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	battle, err := h.app.UpdateBattle(r.Context(), caller.UserID, battleID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, battle)
}

// Delete handles DELETE /battles/{battleID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	battleID, err := uuid.Parse(chi.URLParam(r, "battleID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid battle id")
		return
	}

	if err := h.app.DeleteBattle(r.Context(), caller.UserID, battleID); err != nil {
		h.respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBattleNotFound), errors.Is(err, leagues.ErrLeagueNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNoActiveArmy), errors.Is(err, ErrInvalidOpponent), errors.Is(err, ErrInvalidPoints):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error().Err(err).Msg("battle request failed")
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
