package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes who a request is acting as. An authenticated session
// carries a user id and email; an anonymous one carries only the device id.
// The cart and wishlist stores use it to pick their persistence backend, and
// orders are stamped with it at creation.
type Identity struct {
	UserID   *uuid.UUID
	Email    string
	Role     string
	DeviceID string
}

func (id Identity) Anonymous() bool {
	return id.UserID == nil
}

func (id Identity) Admin() bool {
	return id.Role == "admin"
}

// ForUser builds an authenticated identity.
func ForUser(userID uuid.UUID, email, role string) Identity {
	return Identity{UserID: &userID, Email: email, Role: role}
}

// ForDevice builds an anonymous identity scoped to a device.
func ForDevice(deviceID string) Identity {
	return Identity{DeviceID: deviceID}
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the resolved identity in the context (done by the auth
// middleware).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the request identity. The zero Identity is returned
// when the middleware did not run.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
