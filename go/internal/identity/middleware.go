package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/griffonmill/warleague/go/internal/users"
	"github.com/rs/zerolog"
)

// UserProvisioner mirrors the users app: every authenticated request upserts
// the caller's user row so usernames stay current with the identity provider.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, req users.EnsureUserRequest) (*models.User, error)
}

type claims struct {
	Username string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// Middleware verifies the Authorization bearer token and stores the caller's
// identity in the request context. Requests without a valid token get 401.
func Middleware(secret []byte, provisioner UserProvisioner, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			id, err := parseToken(secret, token)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected bearer token")
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := r.Context()
			if _, err := provisioner.EnsureUser(ctx, users.EnsureUserRequest{
				ID:       id.UserID,
				Username: id.Username,
			}); err != nil {
				logger.Error().Err(err).Str("user_id", id.UserID.String()).Msg("failed to provision user")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}

func parseToken(secret []byte, token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("token is not valid")
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("subject is not a user id: %w", err)
	}
	if c.Username == "" {
		return Identity{}, fmt.Errorf("token carries no username claim")
	}
	return Identity{UserID: userID, Username: c.Username}, nil
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
