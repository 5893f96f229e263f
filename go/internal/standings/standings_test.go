package standings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title string, allegiance models.Allegiance, owner string, active bool) ArmyEntry {
	return ArmyEntry{
		Army: models.Army{
			ID:         uuid.New(),
			Title:      title,
			UserID:     uuid.New(),
			Allegiance: allegiance,
			Active:     active,
		},
		OwnerUsername: owner,
	}
}

func battleBetween(a, b ArmyEntry, aPts, bPts int) models.Battle {
	return models.Battle{
		ID:       uuid.New(),
		Army1ID:  uuid.NullUUID{UUID: a.ID, Valid: true},
		Army2ID:  uuid.NullUUID{UUID: b.ID, Valid: true},
		Army1Pts: aPts,
		Army2Pts: bPts,
	}
}

func TestAggregateRanksByTotalPoints(t *testing.T) {
	ironclad := entry("Ironclad", models.AllegianceSTD, "magnus", true)
	rustbacks := entry("Rustbacks", models.AllegianceORK, "grok", true)

	rows := Aggregate(
		[]ArmyEntry{rustbacks, ironclad},
		[]models.Battle{battleBetween(ironclad, rustbacks, 20, 15)},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, Row{DisplayName: "magnus", ArmyTitle: "Ironclad", AllegianceLabel: "Slaves to Darkness", Points: 20}, rows[0])
	assert.Equal(t, Row{DisplayName: "grok", ArmyTitle: "Rustbacks", AllegianceLabel: "Orruk Warclans", Points: 15}, rows[1])
}

func TestAggregateSumsAcrossBattles(t *testing.T) {
	a := entry("Alpha", models.AllegianceSCE, "ann", true)
	b := entry("Bravo", models.AllegianceNUR, "bob", true)
	c := entry("Charlie", models.AllegianceSKN, "cam", true)

	rows := Aggregate(
		[]ArmyEntry{a, b, c},
		[]models.Battle{
			battleBetween(a, b, 10, 5),
			battleBetween(b, a, 12, 3),
			battleBetween(c, a, 0, 7),
		},
	)

	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[0].ArmyTitle)
	assert.Equal(t, 20, rows[0].Points)
	assert.Equal(t, "Bravo", rows[1].ArmyTitle)
	assert.Equal(t, 17, rows[1].Points)
	assert.Equal(t, "Charlie", rows[2].ArmyTitle)
	assert.Equal(t, 0, rows[2].Points)
}

func TestAggregateIncludesArmiesWithoutBattles(t *testing.T) {
	idle := entry("Idle Host", models.AllegianceSYL, "dora", true)

	rows := Aggregate([]ArmyEntry{idle}, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Points)
	assert.Equal(t, "dora", rows[0].DisplayName)
}

func TestAggregateMasksResignedOwners(t *testing.T) {
	gone := entry("Ghost Legion", models.AllegianceNGT, "eve", false)
	here := entry("Holdouts", models.AllegianceFYR, "finn", true)

	rows := Aggregate(
		[]ArmyEntry{gone, here},
		[]models.Battle{battleBetween(gone, here, 9, 4)},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, ResignedName, rows[0].DisplayName)
	assert.Equal(t, "Ghost Legion", rows[0].ArmyTitle)
	assert.Equal(t, 9, rows[0].Points)
	assert.Equal(t, "finn", rows[1].DisplayName)
}

func TestAggregateBreaksTiesByArmyTitle(t *testing.T) {
	z := entry("Zealots", models.AllegianceKRN, "zed", true)
	a := entry("Ashen Band", models.AllegianceTZN, "ash", true)

	rows := Aggregate(
		[]ArmyEntry{z, a},
		[]models.Battle{battleBetween(z, a, 10, 10)},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, "Ashen Band", rows[0].ArmyTitle)
	assert.Equal(t, "Zealots", rows[1].ArmyTitle)
}

func TestAggregateIgnoresDepartedSides(t *testing.T) {
	survivor := entry("Survivors", models.AllegianceOBR, "gil", true)

	// The opposing army row was removed outright; its side is nulled and its
	// points must not attach to anyone.
	battles := []models.Battle{{
		ID:       uuid.New(),
		Army1ID:  uuid.NullUUID{UUID: survivor.ID, Valid: true},
		Army2ID:  uuid.NullUUID{},
		Army1Pts: 6,
		Army2Pts: 14,
	}}

	rows := Aggregate([]ArmyEntry{survivor}, battles)

	require.Len(t, rows, 1)
	assert.Equal(t, 6, rows[0].Points)
}

type fakeStandingsRepo struct {
	league  *models.League
	entries []ArmyEntry
	battles []models.Battle
}

func (f *fakeStandingsRepo) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	if f.league == nil || f.league.ID != id {
		return nil, errors.New("league not found")
	}
	return f.league, nil
}

func (f *fakeStandingsRepo) ListArmyEntries(ctx context.Context, leagueID uuid.UUID) ([]ArmyEntry, error) {
	return f.entries, nil
}

func (f *fakeStandingsRepo) ListBattles(ctx context.Context, leagueID uuid.UUID) ([]models.Battle, error) {
	return f.battles, nil
}

func TestComputeAuthorization(t *testing.T) {
	owner := uuid.New()
	league := &models.League{ID: uuid.New(), OwnerID: owner}

	member := entry("Members Own", models.AllegianceGSG, "hana", true)
	member.LeagueID = league.ID

	repo := &fakeStandingsRepo{
		league:  league,
		entries: []ArmyEntry{member},
		battles: nil,
	}
	app := NewApp(repo)

	rows, err := app.Compute(context.Background(), owner, league.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = app.Compute(context.Background(), member.UserID, league.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = app.Compute(context.Background(), uuid.New(), league.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
