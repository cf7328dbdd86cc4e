package session

import (
	"context"
	"time"
)

// Record is the server-side state of one browser session. Username is empty
// while the session is anonymous (a session can exist purely to carry flash
// notices across a redirect).
type Record struct {
	Username string   `json:"username"`
	Flashes  []string `json:"flashes,omitempty"`
}

// Store persists session records keyed by opaque session id. Get returns
// (nil, nil) for an unknown or expired id; absence is routine, not an error.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
