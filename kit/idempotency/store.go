package idempotency

import (
	"context"
	"errors"
	"time"
)

// ErrInProgress means another request holds the key and has not finished.
var ErrInProgress = errors.New("idempotency: request in progress")

type State string

const (
	StateProcessing State = "processing"
	StateComplete   State = "complete"
)

type Entry struct {
	State      State
	StatusCode int
	Response   []byte
	CreatedAt  time.Time
}

// Store guards replayed requests behind a client-supplied key. Begin
// returns (nil, nil) when the caller now owns the key, the completed entry
// when a prior request finished, and ErrInProgress while one is running.
type Store interface {
	Begin(ctx context.Context, key string) (*Entry, error)
	Complete(ctx context.Context, key string, statusCode int, response []byte) error
	Abandon(ctx context.Context, key string) error
}
