package armies

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArmiesRepo struct {
	armies      map[uuid.UUID]*models.Army
	createCalls int
}

func newFakeArmiesRepo() *fakeArmiesRepo {
	return &fakeArmiesRepo{armies: make(map[uuid.UUID]*models.Army)}
}

func (f *fakeArmiesRepo) WithinTx(ctx context.Context, fn func(repo ArmiesRepository) error) error {
	return fn(f)
}

func (f *fakeArmiesRepo) CreateArmy(ctx context.Context, leagueID, userID uuid.UUID, req JoinLeagueRequest) (*models.Army, error) {
	for _, army := range f.armies {
		if army.LeagueID == leagueID && army.UserID == userID && army.Active {
			return nil, ErrDuplicateMembership
		}
	}
	f.createCalls++
	army := &models.Army{
		ID:         uuid.New(),
		Title:      req.Title,
		UserID:     userID,
		LeagueID:   leagueID,
		Allegiance: req.Allegiance,
		ImageURL:   req.ImageURL,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.armies[army.ID] = army
	copied := *army
	return &copied, nil
}

func (f *fakeArmiesRepo) GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error) {
	army, ok := f.armies[id]
	if !ok {
		return nil, ErrArmyNotFound
	}
	copied := *army
	return &copied, nil
}

func (f *fakeArmiesRepo) GetByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*models.Army, error) {
	for _, army := range f.armies {
		if army.LeagueID == leagueID && army.UserID == userID {
			copied := *army
			return &copied, nil
		}
	}
	return nil, ErrArmyNotFound
}

func (f *fakeArmiesRepo) ListByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error) {
	var out []models.Army
	for _, army := range f.armies {
		if army.LeagueID == leagueID {
			out = append(out, *army)
		}
	}
	return out, nil
}

func (f *fakeArmiesRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error) {
	var out []ArmyWithLeague
	for _, army := range f.armies {
		if army.UserID == userID && army.Active {
			out = append(out, ArmyWithLeague{Army: *army})
		}
	}
	return out, nil
}

func (f *fakeArmiesRepo) UpdateArmy(ctx context.Context, id uuid.UUID, req UpdateArmyRequest) (*models.Army, error) {
	army, ok := f.armies[id]
	if !ok {
		return nil, ErrArmyNotFound
	}
	army.Title = req.Title
	army.Allegiance = req.Allegiance
	army.ImageURL = req.ImageURL
	copied := *army
	return &copied, nil
}

func (f *fakeArmiesRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Army, error) {
	army, ok := f.armies[id]
	if !ok {
		return nil, ErrArmyNotFound
	}
	army.Active = active
	copied := *army
	return &copied, nil
}

type fakeLeagueReader struct {
	leagues map[uuid.UUID]*models.League
}

func (f *fakeLeagueReader) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, ok := f.leagues[id]
	if !ok {
		return nil, leagues.ErrLeagueNotFound
	}
	copied := *league
	return &copied, nil
}

func (f *fakeLeagueReader) GetLeagueByJoinToken(ctx context.Context, token string) (*models.League, error) {
	for _, league := range f.leagues {
		if league.JoinToken == token {
			copied := *league
			return &copied, nil
		}
	}
	return nil, leagues.ErrLeagueNotFound
}

type capturePublisher struct {
	published []events.Event
}

func (c *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	c.published = append(c.published, event)
	return nil
}

func newTestApp(league *models.League) (*App, *fakeArmiesRepo, *capturePublisher) {
	repo := newFakeArmiesRepo()
	reader := &fakeLeagueReader{leagues: map[uuid.UUID]*models.League{league.ID: league}}
	publisher := &capturePublisher{}
	app := NewApp(repo, reader, publisher, zerolog.Nop())
	return app, repo, publisher
}

func testLeague() *models.League {
	return &models.League{
		ID:        uuid.New(),
		Title:     "Open Play",
		JoinToken: "tok_openplay",
		OwnerID:   uuid.New(),
	}
}

func TestJoinLeagueCreatesArmy(t *testing.T) {
	league := testLeague()
	app, repo, publisher := newTestApp(league)
	user := uuid.New()

	army, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ironclad", army.Title)
	assert.Equal(t, models.AllegianceSTD, army.Allegiance)
	assert.Equal(t, league.ID, army.LeagueID)
	assert.Equal(t, user, army.UserID)
	assert.True(t, army.Active)
	assert.Equal(t, 1, repo.createCalls)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeArmyJoined, publisher.published[0].Type)
	payload := publisher.published[0].Payload.(events.ArmyJoinedPayload)
	assert.False(t, payload.Reactivated)
}

func TestJoinLeagueUnknownToken(t *testing.T) {
	league := testLeague()
	app, _, _ := newTestApp(league)

	_, err := app.JoinLeague(context.Background(), uuid.New(), "no-such-token", JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	assert.ErrorIs(t, err, leagues.ErrLeagueNotFound)
}

func TestJoinLeagueValidation(t *testing.T) {
	league := testLeague()
	app, _, _ := newTestApp(league)
	user := uuid.New()

	_, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Allegiance: models.AllegianceSTD,
	})
	assert.ErrorIs(t, err, ErrInvalidArmy)

	_, err = app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.Allegiance("XYZ"),
	})
	assert.ErrorIs(t, err, ErrInvalidAllegiance)
}

func TestJoinLeagueAlreadyActiveIsIdempotent(t *testing.T) {
	league := testLeague()
	app, repo, _ := newTestApp(league)
	user := uuid.New()

	first, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	second, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Different Name",
		Allegiance: models.AllegianceORK,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ironclad", second.Title, "rejoin ignores request fields")
	assert.Equal(t, 1, repo.createCalls, "no second row is ever created")
	assert.Len(t, repo.armies, 1)
}

func TestJoinLeagueReactivatesResignedArmy(t *testing.T) {
	league := testLeague()
	app, repo, publisher := newTestApp(league)
	user := uuid.New()

	first, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)
	require.NoError(t, app.LeaveLeague(context.Background(), user, league.ID))

	rejoined, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Fresh Start",
		Allegiance: models.AllegianceORK,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, rejoined.ID, "history stays on the same row")
	assert.True(t, rejoined.Active)
	assert.Equal(t, "Ironclad", rejoined.Title, "rejoin ignores request fields")
	assert.Equal(t, 1, repo.createCalls)

	last := publisher.published[len(publisher.published)-1]
	require.Equal(t, events.TypeArmyJoined, last.Type)
	assert.True(t, last.Payload.(events.ArmyJoinedPayload).Reactivated)
}

func TestLeaveLeague(t *testing.T) {
	league := testLeague()
	app, repo, publisher := newTestApp(league)
	user := uuid.New()

	army, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	require.NoError(t, app.LeaveLeague(context.Background(), user, league.ID))

	stored := repo.armies[army.ID]
	require.NotNil(t, stored, "the row survives resignation")
	assert.False(t, stored.Active)

	last := publisher.published[len(publisher.published)-1]
	assert.Equal(t, events.TypeArmyResigned, last.Type)
}

func TestLeaveLeagueNoops(t *testing.T) {
	league := testLeague()
	app, _, publisher := newTestApp(league)
	user := uuid.New()

	// Never joined.
	require.NoError(t, app.LeaveLeague(context.Background(), user, league.ID))
	assert.Empty(t, publisher.published)

	// Already resigned.
	_, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)
	require.NoError(t, app.LeaveLeague(context.Background(), user, league.ID))

	before := len(publisher.published)
	require.NoError(t, app.LeaveLeague(context.Background(), user, league.ID))
	assert.Len(t, publisher.published, before, "second leave publishes nothing")
}

func TestUpdateArmyOwnerOnly(t *testing.T) {
	league := testLeague()
	app, _, _ := newTestApp(league)
	user := uuid.New()

	army, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	update := UpdateArmyRequest{Title: "Ironclad II", Allegiance: models.AllegianceSCE}

	_, err = app.UpdateArmy(context.Background(), uuid.New(), army.ID, update)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := app.UpdateArmy(context.Background(), user, army.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Ironclad II", updated.Title)
	assert.Equal(t, models.AllegianceSCE, updated.Allegiance)
}

func TestUpdateArmyValidation(t *testing.T) {
	league := testLeague()
	app, _, _ := newTestApp(league)
	user := uuid.New()

	army, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	_, err = app.UpdateArmy(context.Background(), user, army.ID, UpdateArmyRequest{
		Title:      "Ironclad",
		Allegiance: models.Allegiance("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidAllegiance)
}

func TestListByLeagueRequiresMembership(t *testing.T) {
	league := testLeague()
	app, _, _ := newTestApp(league)
	user := uuid.New()

	_, err := app.JoinLeague(context.Background(), user, league.JoinToken, JoinLeagueRequest{
		Title:      "Ironclad",
		Allegiance: models.AllegianceSTD,
	})
	require.NoError(t, err)

	listed, err := app.ListByLeague(context.Background(), user, league.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	listed, err = app.ListByLeague(context.Background(), league.OwnerID, league.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = app.ListByLeague(context.Background(), uuid.New(), league.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
