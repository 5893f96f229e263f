package armies

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// ArmiesRepository defines what the app layer needs from the repository
type ArmiesRepository interface {
	WithinTx(ctx context.Context, fn func(repo ArmiesRepository) error) error
	CreateArmy(ctx context.Context, leagueID, userID uuid.UUID, req JoinLeagueRequest) (*models.Army, error)
	GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error)
	GetByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*models.Army, error)
	ListByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error)
	UpdateArmy(ctx context.Context, id uuid.UUID, req UpdateArmyRequest) (*models.Army, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Army, error)
}

// LeagueReader defines what the app layer needs from the leagues repository
type LeagueReader interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetLeagueByJoinToken(ctx context.Context, token string) (*models.League, error)
}

// App handles army membership business logic
type App struct {
	repo      ArmiesRepository
	leagues   LeagueReader
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewApp creates a new armies App
func NewApp(repo ArmiesRepository, leagues LeagueReader, publisher events.Publisher, logger zerolog.Logger) *App {
	return &App{
		repo:      repo,
		leagues:   leagues,
		publisher: publisher,
		logger:    logger,
	}
}

// JoinLeague redeems a join token. A user with an existing army in the league
// gets it reactivated with its history intact, request fields ignored; a
// user already active is a no-op success. Otherwise a new active army is
// created. The read-then-write runs in one transaction so two concurrent
// joins cannot both insert.
func (a *App) JoinLeague(ctx context.Context, userID uuid.UUID, token string, req JoinLeagueRequest) (*models.Army, error) {
	league, err := a.leagues.GetLeagueByJoinToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var army *models.Army
	var reactivated bool
	err = a.repo.WithinTx(ctx, func(repo ArmiesRepository) error {
		existing, err := repo.GetByLeagueAndUser(ctx, league.ID, userID)
		switch {
		case err == nil:
			if existing.Active {
				army = existing
				return nil
			}
			army, err = repo.SetActive(ctx, existing.ID, true)
			reactivated = err == nil
			return err
		case errors.Is(err, ErrArmyNotFound):
			if err := validateArmyFields(req.Title, req.Allegiance); err != nil {
				return err
			}
			army, err = repo.CreateArmy(ctx, league.ID, userID, req)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("league_id", league.ID.String()).
		Str("army_id", army.ID.String()).
		Str("user_id", userID.String()).
		Bool("reactivated", reactivated).
		Msg("joined league")
	a.publish(ctx, events.New(events.TypeArmyJoined, league.ID, events.ArmyJoinedPayload{
		ArmyID:      army.ID,
		UserID:      userID,
		ArmyTitle:   army.Title,
		Allegiance:  string(army.Allegiance),
		Reactivated: reactivated,
	}))
	return army, nil
}

// LeaveLeague resigns the user's army: the row stays with active=false so
// battle history keeps its attribution. Leaving a league the user never
// joined is a no-op.
func (a *App) LeaveLeague(ctx context.Context, userID, leagueID uuid.UUID) error {
	var resigned *models.Army
	err := a.repo.WithinTx(ctx, func(repo ArmiesRepository) error {
		existing, err := repo.GetByLeagueAndUser(ctx, leagueID, userID)
		if errors.Is(err, ErrArmyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !existing.Active {
			return nil
		}
		resigned, err = repo.SetActive(ctx, existing.ID, false)
		return err
	})
	if err != nil {
		return err
	}
	if resigned == nil {
		return nil
	}

	a.logger.Info().
		Str("league_id", leagueID.String()).
		Str("army_id", resigned.ID.String()).
		Msg("left league")
	a.publish(ctx, events.New(events.TypeArmyResigned, leagueID, events.ArmyResignedPayload{
		ArmyID: resigned.ID,
		UserID: userID,
	}))
	return nil
}

// UpdateArmy updates title, allegiance and image. Army owner only.
func (a *App) UpdateArmy(ctx context.Context, userID, armyID uuid.UUID, req UpdateArmyRequest) (*models.Army, error) {
	army, err := a.repo.GetArmy(ctx, armyID)
	if err != nil {
		return nil, err
	}
	if army.UserID != userID {
		return nil, authz.ErrForbidden
	}
	if err := validateArmyFields(req.Title, req.Allegiance); err != nil {
		return nil, err
	}
	return a.repo.UpdateArmy(ctx, armyID, req)
}

// GetArmy retrieves an army by ID.
func (a *App) GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error) {
	return a.repo.GetArmy(ctx, id)
}

// ListByLeague retrieves every army in a league, resigned included. Viewing
// requires league membership or ownership.
func (a *App) ListByLeague(ctx context.Context, userID, leagueID uuid.UUID) ([]models.Army, error) {
	league, err := a.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	armies, err := a.repo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewLeague(userID, *league, armies) {
		return nil, authz.ErrForbidden
	}
	return armies, nil
}

// ListMine retrieves the caller's active armies with their league titles.
func (a *App) ListMine(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error) {
	return a.repo.ListActiveByUser(ctx, userID)
}

func (a *App) publish(ctx context.Context, event events.Event) {
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn().Err(err).Str("event_type", event.Type).Msg("failed to publish event")
	}
}

func validateArmyFields(title string, allegiance models.Allegiance) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArmy)
	}
	if !allegiance.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAllegiance, allegiance)
	}
	return nil
}
