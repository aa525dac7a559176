package domain

import "time"

// Correlation holds the optional external identifiers supplied at
// session start (e.g. by the recruitment platform). Captured once and
// never overwritten for the remainder of the session.
type Correlation struct {
	ParticipantID string
	AssignmentID  string
	ProjectID     string
}

// SessionRecord is the immutable, persisted outcome of one completed
// participant session. It is constructed exactly once, at the
// poststudy→closed transition, after both response sets have passed
// their completeness check.
type SessionRecord struct {
	SessionID   string
	CreatedAt   time.Time
	Correlation Correlation

	PreStudy  map[string]AnswerValue
	PostStudy map[string]AnswerValue

	// Conversation is present only in assistant-enabled variants.
	Conversation []Turn
	EssayText    string

	// ReferenceDocURL records the external reference document shown
	// to the participant, when one was configured.
	ReferenceDocURL string
}
