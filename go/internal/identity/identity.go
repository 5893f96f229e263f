// Package identity extracts the authenticated user from bearer tokens issued
// by the external identity provider. This service only verifies and reads
// claims; it never issues credentials.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated caller threaded through request context.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

type contextKey struct{}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the authenticated identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
