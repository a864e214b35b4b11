// Package session is the single repository for admin session state: the
// upstream bearer token and the cached profile. Storage is behind a small
// interface so handlers and services can be tested without redis.
package session

import (
	"context"
	"errors"
	"time"

	"aussiemate/models"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Record holds everything cached for one signed-in admin.
type Record struct {
	ID            string              `json:"id"`
	Email         string              `json:"email"`
	UpstreamToken string              `json:"upstreamToken"`
	Profile       models.AdminProfile `json:"profile"`
	Remember      bool                `json:"remember"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastSeenAt    time.Time           `json:"lastSeenAt"`
}

// Store is the session repository: explicit get/set/clear over an injectable
// backend.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Set(ctx context.Context, rec Record, ttl time.Duration) error
	Clear(ctx context.Context, id string) error
}

type ctxKey int

const idKey ctxKey = iota

// WithID attaches the session ID to a context so the upstream 401 hook can
// clear the right session.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext returns the session ID attached to the context, if any.
func IDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(idKey).(string); ok {
		return v
	}
	return ""
}
