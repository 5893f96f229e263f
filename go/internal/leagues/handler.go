package leagues

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/identity"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// LeaguesApp defines what the handler needs from the leagues application
type LeaguesApp interface {
	CreateLeague(ctx context.Context, ownerID uuid.UUID, req CreateLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, userID, id uuid.UUID) (*models.League, error)
	ResolveMembership(ctx context.Context, userID, id uuid.UUID) (authz.Status, error)
	ListOwned(ctx context.Context, userID uuid.UUID) ([]models.League, error)
	UpdateLeague(ctx context.Context, userID, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error)
	RegenerateToken(ctx context.Context, userID, id uuid.UUID) (*models.League, error)
	DeleteLeague(ctx context.Context, userID, id uuid.UUID) error
}

// Handler exposes league operations over HTTP.
type Handler struct {
	app    LeaguesApp
	logger zerolog.Logger
}

// NewHandler creates a new leagues Handler
func NewHandler(app LeaguesApp, logger zerolog.Logger) *Handler {
	return &Handler{app: app, logger: logger}
}

// Mount registers the league routes on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Post("/leagues", h.Create)
	r.Get("/leagues/owned", h.ListOwned)
	r.Get("/leagues/{leagueID}", h.Get)
	r.Put("/leagues/{leagueID}", h.Update)
	r.Delete("/leagues/{leagueID}", h.Delete)
	r.Post("/leagues/{leagueID}/token", h.RegenerateToken)
}

// Create handles POST /leagues.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := h.app.CreateLeague(r.Context(), caller.UserID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, leagueResponse(league, true))
}

// Get handles GET /leagues/{leagueID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	league, err := h.app.GetLeague(r.Context(), caller.UserID, id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	status, err := h.app.ResolveMembership(r.Context(), caller.UserID, id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	resp := leagueResponse(league, status == authz.StatusOwner)
	resp["membership"] = status
	h.respondJSON(w, http.StatusOK, resp)
}

// ListOwned handles GET /leagues/owned.
func (h *Handler) ListOwned(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	leagues, err := h.app.ListOwned(r.Context(), caller.UserID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	out := make([]map[string]any, len(leagues))
	for i := range leagues {
		out[i] = leagueResponse(&leagues[i], true)
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"leagues": out})
}

// Update handles PUT /leagues/{leagueID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req UpdateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := h.app.UpdateLeague(r.Context(), caller.UserID, id, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leagueResponse(league, true))
}

// RegenerateToken handles POST /leagues/{leagueID}/token.
func (h *Handler) RegenerateToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	league, err := h.app.RegenerateToken(r.Context(), caller.UserID, id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leagueResponse(league, true))
}

// Delete handles DELETE /leagues/{leagueID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	if err := h.app.DeleteLeague(r.Context(), caller.UserID, id); err != nil {
		h.respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// leagueResponse shapes a league for the wire. The join token is only shown
// to the owner.
func leagueResponse(l *models.League, includeToken bool) map[string]any {
	resp := map[string]any{
		"id":            l.ID,
		"title":         l.Title,
		"description":   l.Description,
		"image_url":     l.ImageURL,
		"owner_id":      l.OwnerID,
		"points_budget": l.PointsBudget,
		"created_at":    l.CreatedAt,
		"updated_at":    l.UpdatedAt,
	}
	if includeToken {
		resp["join_token"] = l.JoinToken
	}
	return resp
}

func (h *Handler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrLeagueNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidLeague):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error().Err(err).Msg("league request failed")
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
