package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/rs/zerolog"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	UpsertUser(ctx context.Context, req EnsureUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// App handles user provisioning from identity claims.
type App struct {
	repo   UsersRepository
	logger zerolog.Logger
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, logger zerolog.Logger) *App {
	return &App{
		repo:   repo,
		logger: logger,
	}
}

// EnsureUser provisions the user row for an authenticated identity, updating
// the stored username when the claims changed.
func (a *App) EnsureUser(ctx context.Context, req EnsureUserRequest) (*models.User, error) {
	if req.ID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	user, err := a.repo.UpsertUser(ctx, req)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("ensured user")
	return user, nil
}

// GetUser retrieves a user by ID.
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return a.repo.GetUser(ctx, id)
}
