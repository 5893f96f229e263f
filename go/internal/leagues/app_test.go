package leagues

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaguesRepo struct {
	leagues map[uuid.UUID]*models.League
	armies  map[uuid.UUID][]models.Army
}

func newFakeLeaguesRepo() *fakeLeaguesRepo {
	return &fakeLeaguesRepo{
		leagues: make(map[uuid.UUID]*models.League),
		armies:  make(map[uuid.UUID][]models.Army),
	}
}

func (f *fakeLeaguesRepo) CreateLeague(ctx context.Context, ownerID uuid.UUID, joinToken string, req CreateLeagueRequest) (*models.League, error) {
	league := &models.League{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		JoinToken:    joinToken,
		OwnerID:      ownerID,
		PointsBudget: req.PointsBudget,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.leagues[league.ID] = league
	copied := *league
	return &copied, nil
}

func (f *fakeLeaguesRepo) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, ok := f.leagues[id]
	if !ok {
		return nil, ErrLeagueNotFound
	}
	copied := *league
	return &copied, nil
}

func (f *fakeLeaguesRepo) GetLeagueByJoinToken(ctx context.Context, token string) (*models.League, error) {
	for _, league := range f.leagues {
		if league.JoinToken == token {
			copied := *league
			return &copied, nil
		}
	}
	return nil, ErrLeagueNotFound
}

func (f *fakeLeaguesRepo) ListLeaguesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.League, error) {
	var out []models.League
	for _, league := range f.leagues {
		if league.OwnerID == ownerID {
			out = append(out, *league)
		}
	}
	return out, nil
}

func (f *fakeLeaguesRepo) ListLeagueArmies(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error) {
	return f.armies[leagueID], nil
}

func (f *fakeLeaguesRepo) UpdateLeague(ctx context.Context, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error) {
	league, ok := f.leagues[id]
	if !ok {
		return nil, ErrLeagueNotFound
	}
	league.Title = req.Title
	league.Description = req.Description
	league.ImageURL = req.ImageURL
	league.PointsBudget = req.PointsBudget
	copied := *league
	return &copied, nil
}

func (f *fakeLeaguesRepo) UpdateJoinToken(ctx context.Context, id uuid.UUID, token string) (*models.League, error) {
	league, ok := f.leagues[id]
	if !ok {
		return nil, ErrLeagueNotFound
	}
	league.JoinToken = token
	copied := *league
	return &copied, nil
}

func (f *fakeLeaguesRepo) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.leagues[id]; !ok {
		return ErrLeagueNotFound
	}
	delete(f.leagues, id)
	return nil
}

type capturePublisher struct {
	published []events.Event
}

func (c *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	c.published = append(c.published, event)
	return nil
}

func newTestApp() (*App, *fakeLeaguesRepo, *capturePublisher) {
	repo := newFakeLeaguesRepo()
	publisher := &capturePublisher{}
	app := NewApp(repo, publisher, zerolog.Nop())
	return app, repo, publisher
}

func validCreate() CreateLeagueRequest {
	return CreateLeagueRequest{
		Title:        "Winter Campaign",
		Description:  "Escalation league, fortnightly games",
		PointsBudget: 2000,
	}
}

func TestCreateLeague(t *testing.T) {
	app, _, _ := newTestApp()
	owner := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)

	assert.Equal(t, owner, league.OwnerID)
	assert.Equal(t, "Winter Campaign", league.Title)
	assert.Equal(t, 2000, league.PointsBudget)
	assert.Len(t, league.JoinToken, joinTokenLength)
}

func TestCreateLeagueValidation(t *testing.T) {
	app, _, _ := newTestApp()
	owner := uuid.New()

	tests := []struct {
		name string
		req  CreateLeagueRequest
	}{
		{"missing title", CreateLeagueRequest{Description: "d", PointsBudget: 1000}},
		{"missing description", CreateLeagueRequest{Title: "t", PointsBudget: 1000}},
		{"zero points budget", CreateLeagueRequest{Title: "t", Description: "d"}},
		{"negative points budget", CreateLeagueRequest{Title: "t", Description: "d", PointsBudget: -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.CreateLeague(context.Background(), owner, tt.req)
			assert.ErrorIs(t, err, ErrInvalidLeague)
		})
	}
}

func TestGetLeagueVisibility(t *testing.T) {
	app, repo, _ := newTestApp()
	owner := uuid.New()
	resigned := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)
	repo.armies[league.ID] = []models.Army{
		{ID: uuid.New(), LeagueID: league.ID, UserID: resigned, Active: false},
	}

	_, err = app.GetLeague(context.Background(), owner, league.ID)
	assert.NoError(t, err)

	_, err = app.GetLeague(context.Background(), resigned, league.ID)
	assert.NoError(t, err, "resigned members keep read access to the league")

	_, err = app.GetLeague(context.Background(), uuid.New(), league.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = app.GetLeague(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrLeagueNotFound)
}

func TestUpdateLeagueOwnerOnly(t *testing.T) {
	app, _, _ := newTestApp()
	owner := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)

	update := UpdateLeagueRequest{Title: "Spring Campaign", Description: "new season", PointsBudget: 1500}

	_, err = app.UpdateLeague(context.Background(), uuid.New(), league.ID, update)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := app.UpdateLeague(context.Background(), owner, league.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Spring Campaign", updated.Title)
	assert.Equal(t, 1500, updated.PointsBudget)
	assert.Equal(t, owner, updated.OwnerID, "ownership never changes on update")
	assert.Equal(t, league.JoinToken, updated.JoinToken, "join token never changes on update")
}

func TestRegenerateToken(t *testing.T) {
	app, _, _ := newTestApp()
	owner := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)

	_, err = app.RegenerateToken(context.Background(), uuid.New(), league.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := app.RegenerateToken(context.Background(), owner, league.ID)
	require.NoError(t, err)
	assert.NotEqual(t, league.JoinToken, updated.JoinToken)
	assert.Len(t, updated.JoinToken, joinTokenLength)
}

func TestDeleteLeague(t *testing.T) {
	app, _, publisher := newTestApp()
	owner := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)

	err = app.DeleteLeague(context.Background(), uuid.New(), league.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	err = app.DeleteLeague(context.Background(), owner, league.ID)
	require.NoError(t, err)

	_, err = app.GetLeague(context.Background(), owner, league.ID)
	assert.ErrorIs(t, err, ErrLeagueNotFound)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeLeagueDeleted, publisher.published[0].Type)
	assert.Equal(t, league.ID, publisher.published[0].LeagueID)
}

func TestResolveMembership(t *testing.T) {
	app, repo, _ := newTestApp()
	owner := uuid.New()
	active := uuid.New()

	league, err := app.CreateLeague(context.Background(), owner, validCreate())
	require.NoError(t, err)
	repo.armies[league.ID] = []models.Army{
		{ID: uuid.New(), LeagueID: league.ID, UserID: active, Active: true},
	}

	status, err := app.ResolveMembership(context.Background(), owner, league.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusOwner, status)

	status, err = app.ResolveMembership(context.Background(), active, league.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusActiveMember, status)

	status, err = app.ResolveMembership(context.Background(), uuid.New(), league.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusNonMember, status)
}
