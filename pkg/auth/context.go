package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const gardenerIDKey contextKey = "gardener_id"

// ErrGardenerIDNotFound is returned when no GardenerID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrGardenerIDNotFound = errors.New("gardener_id not found in context")

// GardenerIDFromCtx extracts the authenticated gardener ID from the request context.
// Returns uuid.Nil and ErrGardenerIDNotFound if no GardenerID is set (unauthenticated request).
func GardenerIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	gardenerID, ok := ctx.Value(gardenerIDKey).(uuid.UUID)
	if !ok || gardenerID == uuid.Nil {
		return uuid.Nil, ErrGardenerIDNotFound
	}
	return gardenerID, nil
}

// WithGardenerID returns a new context with the given GardenerID attached.
// Used by authentication middleware after validating the session.
func WithGardenerID(ctx context.Context, gardenerID uuid.UUID) context.Context {
	return context.WithValue(ctx, gardenerIDKey, gardenerID)
}
