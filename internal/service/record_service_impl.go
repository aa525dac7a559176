package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mabdulhai/studyflow/internal/db"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/repository"
	"github.com/google/uuid"
)

type recordService struct {
	records  repository.RecordRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewRecordService creates the RecordService over the given repository
// and unit of work. The record row and its conversation turns are
// written in one transaction.
func NewRecordService(records repository.RecordRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RecordService {
	return &recordService{
		records:  records,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *recordService) Finalize(ctx context.Context, input FinalizeInput) (*domain.SessionRecord, error) {
	start := time.Now()

	// The state machine already gated on completeness, but a durable
	// write never trusts the caller's prior validation alone.
	if err := s.assertConstructible(input); err != nil {
		s.observe(ctx, "finalize", start, err, map[string]any{"session_id": input.SessionID})
		return nil, err
	}

	rec := buildRecord(input)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRecordRepo(tx).Put(ctx, rec)
	})
	if err != nil {
		perr := &PersistenceError{SessionID: rec.SessionID, Err: err}
		s.observe(ctx, "finalize", start, perr, map[string]any{"session_id": rec.SessionID})
		// The record survives the fault so the caller can retry the put.
		return rec, perr
	}

	s.observe(ctx, "finalize", start, nil, map[string]any{
		"session_id":  rec.SessionID,
		"turns":       len(rec.Conversation),
		"participant": rec.Correlation.ParticipantID,
	})
	return rec, nil
}

// assertConstructible re-checks the completeness invariant.
func (s *recordService) assertConstructible(input FinalizeInput) error {
	missing := map[string][]string{}
	if input.PreStudy == nil {
		return &ConstructionError{Reason: "prestudy responses absent"}
	}
	if input.PostStudy == nil {
		return &ConstructionError{Reason: "poststudy responses absent"}
	}
	if keys := input.PreStudySchema.Unanswered(input.PreStudy); len(keys) > 0 {
		missing[string(domain.PhasePreStudy)] = keys
	}
	if keys := input.PostStudySchema.Unanswered(input.PostStudy); len(keys) > 0 {
		missing[string(domain.PhasePostStudy)] = keys
	}
	if len(missing) > 0 {
		return &ConstructionError{Missing: missing}
	}
	if input.RequireArtifact == domain.ArtifactBlocking && domain.FreeText(input.EssayText).IsEmpty() {
		return &ConstructionError{Reason: "essay text required but empty"}
	}
	return nil
}

// buildRecord assembles the immutable record from validated inputs.
func buildRecord(input FinalizeInput) *domain.SessionRecord {
	id := input.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	rec := &domain.SessionRecord{
		SessionID:       id,
		CreatedAt:       time.Now().UTC(),
		Correlation:     input.Correlation,
		PreStudy:        input.PreStudy.Snapshot(),
		PostStudy:       input.PostStudy.Snapshot(),
		EssayText:       input.EssayText,
		ReferenceDocURL: input.ReferenceDocURL,
	}
	if input.Conversation != nil {
		rec.Conversation = input.Conversation.Turns()
	}
	return rec
}

func (s *recordService) GetByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	return s.records.GetByID(ctx, sessionID)
}

func (s *recordService) List(ctx context.Context) ([]repository.RecordSummary, error) {
	return s.records.List(ctx)
}

func (s *recordService) Delete(ctx context.Context, sessionID string) error {
	return s.records.Delete(ctx, sessionID)
}

// exportTurn is the interchange shape of one conversation turn.
type exportTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// exportRecord is the interchange shape of a stored session record.
type exportRecord struct {
	Timestamp     string                        `json:"timestamp"`
	ParticipantID string                        `json:"participant_id,omitempty"`
	AssignmentID  string                        `json:"assignment_id,omitempty"`
	ProjectID     string                        `json:"project_id,omitempty"`
	PreStudy      map[string]domain.AnswerValue `json:"prestudy"`
	Conversation  []exportTurn                  `json:"conversation,omitempty"`
	EssayText     string                        `json:"essay_text,omitempty"`
	PostStudy     map[string]domain.AnswerValue `json:"poststudy"`
	ReferenceDoc  string                        `json:"reference_doc,omitempty"`
}

func (s *recordService) ExportJSON(ctx context.Context, sessionID string) ([]byte, error) {
	rec, err := s.records.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := exportRecord{
		Timestamp:     rec.CreatedAt.Format(time.RFC3339),
		ParticipantID: rec.Correlation.ParticipantID,
		AssignmentID:  rec.Correlation.AssignmentID,
		ProjectID:     rec.Correlation.ProjectID,
		PreStudy:      rec.PreStudy,
		EssayText:     rec.EssayText,
		PostStudy:     rec.PostStudy,
		ReferenceDoc:  rec.ReferenceDocURL,
	}
	for _, turn := range rec.Conversation {
		out.Conversation = append(out.Conversation, exportTurn{Role: string(turn.Role), Text: turn.Text})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding session record %s: %w", sessionID, err)
	}
	return data, nil
}

func (s *recordService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}
