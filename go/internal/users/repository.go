package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/models"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertUser(ctx context.Context, arg db.UpsertUserParams) (db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (db.User, error)
}

// Repository implements user data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new users repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertUser creates the user row or refreshes its username.
func (r *Repository) UpsertUser(ctx context.Context, req EnsureUserRequest) (*models.User, error) {
	user, err := r.queries.UpsertUser(ctx, db.UpsertUserParams{
		ID:       req.ID,
		Username: req.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return dbUserToModel(user), nil
}

// GetUser retrieves a user by ID.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return dbUserToModel(user), nil
}

func dbUserToModel(u db.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
