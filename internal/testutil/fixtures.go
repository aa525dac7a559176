package testutil

import (
	"strings"
	"time"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
	"github.com/google/uuid"
)

// CompleteResponses returns a response set answering every required
// question of the given schema with its first option (or placeholder
// text for free-text questions).
func CompleteResponses(s schema.PhaseSchema) *domain.ResponseSet {
	rs := domain.NewResponseSet()
	for _, q := range s.Questions {
		if q.Optional || q.ConditionalOn != nil {
			continue
		}
		switch q.Kind {
		case domain.AnswerSingleChoice:
			_ = rs.Set(q.Key, domain.SingleChoice(q.Options[0]))
		case domain.AnswerMultiChoice:
			_ = rs.Set(q.Key, domain.MultiChoice(q.Options[:1]))
		case domain.AnswerFreeText:
			_ = rs.Set(q.Key, domain.FreeText("test answer for "+q.Key))
		}
	}
	return rs
}

// Essay returns a deterministic essay of the given word count.
func Essay(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = "technology"
		if i%2 == 1 {
			parts[i] = "society"
		}
	}
	return strings.Join(parts, " ")
}

// Record options
type RecordOption func(*domain.SessionRecord)

func WithSessionID(id string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.SessionID = id
	}
}

func WithCorrelation(participant, assignment, project string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Correlation = domain.Correlation{
			ParticipantID: participant,
			AssignmentID:  assignment,
			ProjectID:     project,
		}
	}
}

func WithConversation(turns []domain.Turn) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Conversation = turns
	}
}

func WithEssay(text string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.EssayText = text
	}
}

// NewTestRecord builds a complete session record with fully answered
// canonical questionnaires.
func NewTestRecord(opts ...RecordOption) *domain.SessionRecord {
	rec := &domain.SessionRecord{
		SessionID: uuid.New().String(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		PreStudy:  CompleteResponses(schema.PreStudy()).Snapshot(),
		PostStudy: CompleteResponses(schema.PostStudy()).Snapshot(),
		EssayText: Essay(350),
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

// SampleTurns returns a short user/assistant exchange.
func SampleTurns() []domain.Turn {
	return []domain.Turn{
		{Role: domain.RoleUser, Text: "how should I open the essay?", Seq: 0},
		{Role: domain.RoleAssistant, Text: "start with a concrete example", Seq: 1},
	}
}
