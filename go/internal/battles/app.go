package battles

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// BattlesRepository defines what the app layer needs from the repository
type BattlesRepository interface {
	WithinTx(ctx context.Context, fn func(repo BattlesRepository) error) error
	CreateBattle(ctx context.Context, leagueID, army1ID, army2ID uuid.UUID, army1Pts, army2Pts int, foughtOn time.Time) (*models.Battle, error)
	GetBattle(ctx context.Context, id uuid.UUID) (*models.Battle, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error)
	GetActiveArmy(ctx context.Context, leagueID, userID uuid.UUID) (*models.Army, error)
	ListLeagueArmies(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error)
	ListRows(ctx context.Context, leagueID uuid.UUID, limit int) ([]BattleRow, error)
	UpdateBattle(ctx context.Context, id, army2ID uuid.UUID, army1Pts, army2Pts int, foughtOn time.Time) (*models.Battle, error)
	DeleteBattle(ctx context.Context, id uuid.UUID) error
}

// App handles battle ledger business logic. Battles are terminal records:
// no confirmation workflow, mutable only via explicit update, removable only
// via explicit delete.
type App struct {
	repo      BattlesRepository
	publisher events.Publisher
	clock     clockwork.Clock
	logger    zerolog.Logger
}

// NewApp creates a new battles App
func NewApp(repo BattlesRepository, publisher events.Publisher, clock clockwork.Clock, logger zerolog.Logger) *App {
	return &App{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// RecordBattle records a result submitted by one participant. The
// submitter's active army in the league becomes army1; army2 must be another
// player's active army in the same league. Resolution and insert share one
// transaction.
func (a *App) RecordBattle(ctx context.Context, userID, leagueID uuid.UUID, req RecordBattleRequest) (*models.Battle, error) {
	if err := validatePoints(req.Army1Pts, req.Army2Pts); err != nil {
		return nil, err
	}

	foughtOn := req.FoughtOn
	if foughtOn.IsZero() {
		foughtOn = a.clock.Now().UTC()
	}

	var battle *models.Battle
	err := a.repo.WithinTx(ctx, func(repo BattlesRepository) error {
		league, err := repo.GetLeague(ctx, leagueID)
		if err != nil {
			return err
		}

		army1, err := repo.GetActiveArmy(ctx, leagueID, userID)
		if err != nil {
			return err
		}

		army2, err := repo.GetArmy(ctx, req.Army2ID)
		if err != nil {
			return err
		}
		if army2 == nil {
			return fmt.Errorf("%w: army %s does not exist", ErrInvalidOpponent, req.Army2ID)
		}
		if !authz.CanRecordBattle(userID, *army1, *army2, *league) {
			return ErrInvalidOpponent
		}

		battle, err = repo.CreateBattle(ctx, leagueID, army1.ID, army2.ID, req.Army1Pts, req.Army2Pts, foughtOn)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("battle_id", battle.ID.String()).
		Str("league_id", leagueID.String()).
		Int("army1_pts", battle.Army1Pts).
		Int("army2_pts", battle.Army2Pts).
		Msg("recorded battle")
	a.publish(ctx, events.New(events.TypeBattleRecorded, leagueID, events.BattleRecordedPayload{
		BattleID: battle.ID,
		Army1ID:  battle.Army1ID.UUID,
		Army2ID:  battle.Army2ID.UUID,
		Army1Pts: battle.Army1Pts,
		Army2Pts: battle.Army2Pts,
		FoughtOn: battle.FoughtOn,
	}))
	return battle, nil
}

// UpdateBattle lets a participant or the league owner correct a recorded
// result. A changed opponent is validated like a fresh record.
func (a *App) UpdateBattle(ctx context.Context, userID, battleID uuid.UUID, req UpdateBattleRequest) (*models.Battle, error) {
	if err := validatePoints(req.Army1Pts, req.Army2Pts); err != nil {
		return nil, err
	}

	var updated *models.Battle
	err := a.repo.WithinTx(ctx, func(repo BattlesRepository) error {
		battle, league, army1, army2, err := a.loadBattleContext(ctx, repo, battleID)
		if err != nil {
			return err
		}
		if !authz.CanModifyBattle(userID, *battle, army1, army2, *league) {
			return authz.ErrForbidden
		}

		if !battle.Army2ID.Valid || battle.Army2ID.UUID != req.Army2ID {
			newArmy2, err := repo.GetArmy(ctx, req.Army2ID)
			if err != nil {
				return err
			}
			if newArmy2 == nil || newArmy2.LeagueID != league.ID || !newArmy2.Active {
				return ErrInvalidOpponent
			}
			if army1 != nil && newArmy2.UserID == army1.UserID {
				return ErrInvalidOpponent
			}
		}

		foughtOn := req.FoughtOn
		if foughtOn.IsZero() {
			foughtOn = battle.FoughtOn
		}

		updated, err = repo.UpdateBattle(ctx, battleID, req.Army2ID, req.Army1Pts, req.Army2Pts, foughtOn)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("battle_id", battleID.String()).Msg("updated battle")
	return updated, nil
}

// DeleteBattle removes a ledger entry. Participants and the league owner
// only.
func (a *App) DeleteBattle(ctx context.Context, userID, battleID uuid.UUID) error {
	var leagueID uuid.UUID
	err := a.repo.WithinTx(ctx, func(repo BattlesRepository) error {
		battle, league, army1, army2, err := a.loadBattleContext(ctx, repo, battleID)
		if err != nil {
			return err
		}
		if !authz.CanModifyBattle(userID, *battle, army1, army2, *league) {
			return authz.ErrForbidden
		}
		leagueID = league.ID
		return repo.DeleteBattle(ctx, battleID)
	})
	if err != nil {
		return err
	}

	a.logger.Info().Str("battle_id", battleID.String()).Msg("deleted battle")
	a.publish(ctx, events.New(events.TypeBattleDeleted, leagueID, events.BattleDeletedPayload{
		BattleID: battleID,
	}))
	return nil
}

// ListBattles returns the league's ledger, newest first. Viewing requires
// league ownership or active membership.
func (a *App) ListBattles(ctx context.Context, userID, leagueID uuid.UUID, limit int) ([]BattleRow, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	league, err := a.repo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	leagueArmies, err := a.repo.ListLeagueArmies(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	switch authz.ResolveMembership(userID, *league, leagueArmies) {
	case authz.StatusOwner, authz.StatusActiveMember:
	default:
		return nil, authz.ErrForbidden
	}
	return a.repo.ListRows(ctx, leagueID, limit)
}

// loadBattleContext fetches a battle with its league and surviving side
// armies. A side whose army row was removed comes back nil.
func (a *App) loadBattleContext(ctx context.Context, repo BattlesRepository, battleID uuid.UUID) (*models.Battle, *models.League, *models.Army, *models.Army, error) {
	battle, err := repo.GetBattle(ctx, battleID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	league, err := repo.GetLeague(ctx, battle.LeagueID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var army1, army2 *models.Army
	if battle.Army1ID.Valid {
		if army1, err = repo.GetArmy(ctx, battle.Army1ID.UUID); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	if battle.Army2ID.Valid {
		if army2, err = repo.GetArmy(ctx, battle.Army2ID.UUID); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return battle, league, army1, army2, nil
}

func (a *App) publish(ctx context.Context, event events.Event) {
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn().Err(err).Str("event_type", event.Type).Msg("failed to publish event")
	}
}

func validatePoints(army1Pts, army2Pts int) error {
	if army1Pts < 0 || army2Pts < 0 {
		return ErrInvalidPoints
	}
	return nil
}
