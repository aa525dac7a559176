package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mabdulhai/studyflow/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// RecordSummary is a lightweight view of a stored session record for
// listing, without the response payloads.
type RecordSummary struct {
	SessionID     string
	CreatedAt     time.Time
	ParticipantID string
	TurnCount     int
	EssayWords    int
}

// RecordRepo is the durable, keyed store for finalized session
// records. Put is an idempotent upsert: repeating it with the same
// session id and an identical record is safe.
type RecordRepo interface {
	Put(ctx context.Context, rec *domain.SessionRecord) error
	GetByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	List(ctx context.Context) ([]RecordSummary, error)
	Delete(ctx context.Context, sessionID string) error
}
