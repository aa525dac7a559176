package service

import (
	"context"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/repository"
	"github.com/mabdulhai/studyflow/internal/schema"
)

// FinalizeInput carries everything needed to assemble and persist one
// session record at the poststudy→closed transition.
type FinalizeInput struct {
	// SessionID, when set, reuses an identifier from a previously
	// constructed record so a retried finalize upserts the same key.
	// Left empty, a fresh identifier is generated.
	SessionID string

	Correlation domain.Correlation

	PreStudy       *domain.ResponseSet
	PreStudySchema schema.PhaseSchema

	// Conversation is nil for unassisted variants.
	Conversation *domain.ConversationLog

	EssayText       string
	RequireArtifact domain.ArtifactPolicy

	PostStudy       *domain.ResponseSet
	PostStudySchema schema.PhaseSchema

	ReferenceDocURL string
}

// RecordService assembles, persists, and retrieves session records.
type RecordService interface {
	// Finalize re-asserts the completeness invariant, builds the
	// immutable record, and stores it. On a storage fault it returns
	// both the constructed record and a *PersistenceError so the
	// caller can retry without losing data.
	Finalize(ctx context.Context, input FinalizeInput) (*domain.SessionRecord, error)

	GetByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	List(ctx context.Context) ([]repository.RecordSummary, error)
	Delete(ctx context.Context, sessionID string) error

	// ExportJSON renders a stored record in the interchange shape
	// (timestamp, prestudy, conversation, poststudy, essay_text,
	// correlation identifiers).
	ExportJSON(ctx context.Context, sessionID string) ([]byte, error)
}
