package leagues

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// LeaguesRepository defines what the app layer needs from the repository
type LeaguesRepository interface {
	CreateLeague(ctx context.Context, ownerID uuid.UUID, joinToken string, req CreateLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetLeagueByJoinToken(ctx context.Context, token string) (*models.League, error)
	ListLeaguesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.League, error)
	ListLeagueArmies(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error)
	UpdateLeague(ctx context.Context, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error)
	UpdateJoinToken(ctx context.Context, id uuid.UUID, token string) (*models.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
}

// App handles league business logic
type App struct {
	repo      LeaguesRepository
	publisher events.Publisher
	newToken  func() (string, error)
	logger    zerolog.Logger
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository, publisher events.Publisher, logger zerolog.Logger) *App {
	return &App{
		repo:      repo,
		publisher: publisher,
		newToken:  NewJoinToken,
		logger:    logger,
	}
}

// CreateLeague creates a new league with the caller as immutable owner and a
// fresh join token.
func (a *App) CreateLeague(ctx context.Context, ownerID uuid.UUID, req CreateLeagueRequest) (*models.League, error) {
	if err := validateLeagueFields(req.Title, req.Description, req.PointsBudget); err != nil {
		return nil, err
	}

	token, err := a.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join token: %w", err)
	}

	league, err := a.repo.CreateLeague(ctx, ownerID, token, req)
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("league_id", league.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("title", league.Title).
		Msg("created league")
	return league, nil
}

// GetLeague retrieves a league for viewing. Only the owner and players with
// an army row in the league (resigned included) may see it.
func (a *App) GetLeague(ctx context.Context, userID, id uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}

	armies, err := a.repo.ListLeagueArmies(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewLeague(userID, *league, armies) {
		return nil, authz.ErrForbidden
	}
	return league, nil
}

// ResolveMembership reports the caller's standing within a league.
func (a *App) ResolveMembership(ctx context.Context, userID, id uuid.UUID) (authz.Status, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return "", err
	}
	armies, err := a.repo.ListLeagueArmies(ctx, id)
	if err != nil {
		return "", err
	}
	return authz.ResolveMembership(userID, *league, armies), nil
}

// ListOwned retrieves the leagues the user owns.
func (a *App) ListOwned(ctx context.Context, userID uuid.UUID) ([]models.League, error) {
	return a.repo.ListLeaguesByOwner(ctx, userID)
}

// UpdateLeague updates a league's editable fields. Owner only; the owner
// reference itself is immutable.
func (a *App) UpdateLeague(ctx context.Context, userID, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error) {
	if err := validateLeagueFields(req.Title, req.Description, req.PointsBudget); err != nil {
		return nil, err
	}

	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageLeague(userID, *league) {
		return nil, authz.ErrForbidden
	}

	updated, err := a.repo.UpdateLeague(ctx, id, req)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("league_id", id.String()).Msg("updated league")
	return updated, nil
}

// RegenerateToken replaces the league's join token, invalidating the old one.
// Owner only.
func (a *App) RegenerateToken(ctx context.Context, userID, id uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageLeague(userID, *league) {
		return nil, authz.ErrForbidden
	}

	token, err := a.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join token: %w", err)
	}

	updated, err := a.repo.UpdateJoinToken(ctx, id, token)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("league_id", id.String()).Msg("regenerated join token")
	return updated, nil
}

// DeleteLeague deletes a league and, by cascade, all its armies and battles.
// Owner only.
func (a *App) DeleteLeague(ctx context.Context, userID, id uuid.UUID) error {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManageLeague(userID, *league) {
		return authz.ErrForbidden
	}

	if err := a.repo.DeleteLeague(ctx, id); err != nil {
		return err
	}

	a.logger.Info().Str("league_id", id.String()).Str("title", league.Title).Msg("deleted league")
	a.publish(ctx, events.New(events.TypeLeagueDeleted, id, events.LeagueDeletedPayload{Title: league.Title}))
	return nil
}

func (a *App) publish(ctx context.Context, event events.Event) {
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn().Err(err).Str("event_type", event.Type).Msg("failed to publish event")
	}
}

func validateLeagueFields(title, description string, pointsBudget int) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidLeague)
	}
	if description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidLeague)
	}
	if pointsBudget <= 0 {
		return fmt.Errorf("%w: points budget must be positive", ErrInvalidLeague)
	}
	return nil
}
