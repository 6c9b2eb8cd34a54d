package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Record is the server-side session state bound to an opaque session id.
type Record struct {
	SID       string
	UserID    string
	LoggedIn  bool
	CreatedAt time.Time
}

// Store persists session records. The cookie only carries the session id;
// logout deletes the record here, which invalidates the token immediately.
type Store interface {
	Put(ctx context.Context, rec Record, ttl time.Duration) error
	Get(ctx context.Context, sid string) (*Record, error)
	Delete(ctx context.Context, sid string) error
}
