package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/service"
)

// ErrWrongPhase is returned when a transition is invoked from a phase
// that does not accept it. Re-invoking a transition after it already
// fired lands here, which keeps double-submits harmless.
var ErrWrongPhase = errors.New("transition not valid in current phase")

// ValidationError reports the guard that blocked a forward transition.
type ValidationError struct {
	Phase   domain.Phase
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("phase %s incomplete: %s", e.Phase, strings.Join(e.Missing, ", "))
}

// Session is the state machine driving one participant through the
// study. Transitions move strictly forward through the configured
// phase sequence; each forward exit freezes the data collected in the
// phase being left.
type Session struct {
	cfg      Config
	sequence []domain.Phase
	pos      int

	correlation    domain.Correlation
	correlationSet bool

	prestudy     *domain.ResponseSet
	poststudy    *domain.ResponseSet
	conversation *domain.ConversationLog
	essay        string

	pendingID string // session id retained across a failed persist

	records service.RecordService
}

// NewSession creates a session in the first configured phase with
// empty response sets and, when the assistant is enabled, an open
// conversation log.
func NewSession(cfg Config, records service.RecordService) *Session {
	s := &Session{cfg: cfg, records: records}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.sequence = s.cfg.phases()
	s.pos = 0
	s.prestudy = domain.NewResponseSet()
	s.poststudy = domain.NewResponseSet()
	s.conversation = nil
	if s.cfg.AssistantEnabled {
		s.conversation = domain.NewConversationLog()
	}
	s.essay = ""
	s.pendingID = ""
}

// Phase returns the current phase.
func (s *Session) Phase() domain.Phase { return s.sequence[s.pos] }

// Config returns the study configuration the session was built with.
func (s *Session) Config() Config { return s.cfg }

// SetCorrelation captures external correlation identifiers. They are
// recorded once; later calls are ignored so a mid-session reload
// cannot relabel the participant.
func (s *Session) SetCorrelation(c domain.Correlation) {
	if s.correlationSet {
		return
	}
	s.correlation = c
	s.correlationSet = true
}

// Correlation returns the captured correlation identifiers.
func (s *Session) Correlation() domain.Correlation { return s.correlation }

// PreStudy returns the pre-study response set. Writable until the
// pre-study phase is exited.
func (s *Session) PreStudy() *domain.ResponseSet { return s.prestudy }

// PostStudy returns the post-study response set.
func (s *Session) PostStudy() *domain.ResponseSet { return s.poststudy }

// Conversation returns the conversation log, or nil when the
// assistant is disabled for this study variant.
func (s *Session) Conversation() *domain.ConversationLog { return s.conversation }

// Essay returns the participant's essay text.
func (s *Session) Essay() string { return s.essay }

// SetEssay records the essay draft. Only accepted during the task
// phase.
func (s *Session) SetEssay(text string) error {
	if s.Phase() != domain.PhaseTask {
		return ErrWrongPhase
	}
	s.essay = text
	return nil
}

// EssayMissing reports whether the essay is still blank under the
// configured artifact policy. Callers use it to warn under the
// advisory policy, where FinishTask proceeds regardless.
func (s *Session) EssayMissing() bool {
	if s.cfg.RequireArtifact == domain.ArtifactNone {
		return false
	}
	return domain.FreeText(s.essay).IsEmpty()
}

// Agree records consent and advances past the consent phase.
func (s *Session) Agree() error {
	if s.Phase() != domain.PhaseConsent {
		return ErrWrongPhase
	}
	s.advance()
	return nil
}

// Start exits the pre-study phase. The transition is refused with a
// ValidationError naming every unanswered question until the
// questionnaire is complete; on success the response set freezes.
func (s *Session) Start() error {
	if s.Phase() != domain.PhasePreStudy {
		return ErrWrongPhase
	}
	if missing := s.cfg.PreStudy.Unanswered(s.prestudy); len(missing) > 0 {
		return &ValidationError{Phase: domain.PhasePreStudy, Missing: missing}
	}
	s.prestudy.Freeze()
	s.advance()
	return nil
}

// ConfirmDone acknowledges the interstitial wait phase. The
// participant's word is the only guard here.
func (s *Session) ConfirmDone() error {
	if s.Phase() != domain.PhaseWaitingForDone {
		return ErrWrongPhase
	}
	s.advance()
	return nil
}

// FinishTask exits the task phase. Under the blocking artifact policy
// an empty essay refuses the transition; under advisory or none the
// session moves on. The conversation log closes on exit.
func (s *Session) FinishTask() error {
	if s.Phase() != domain.PhaseTask {
		return ErrWrongPhase
	}
	if s.cfg.RequireArtifact == domain.ArtifactBlocking && domain.FreeText(s.essay).IsEmpty() {
		return &ValidationError{Phase: domain.PhaseTask, Missing: []string{"essay_text"}}
	}
	if s.conversation != nil {
		s.conversation.Close()
	}
	s.advance()
	return nil
}

// Submit exits the post-study phase: it validates the questionnaire,
// finalizes the session record, and on a successful write resets the
// session for the next participant.
//
// When the write fails the session stays in the post-study phase and
// retains the record's identifier, so a later Submit retries the same
// logical record instead of minting a duplicate.
func (s *Session) Submit(ctx context.Context) (*domain.SessionRecord, error) {
	if s.Phase() != domain.PhasePostStudy {
		return nil, ErrWrongPhase
	}
	if missing := s.cfg.PostStudy.Unanswered(s.poststudy); len(missing) > 0 {
		return nil, &ValidationError{Phase: domain.PhasePostStudy, Missing: missing}
	}
	s.poststudy.Freeze()

	rec, err := s.records.Finalize(ctx, service.FinalizeInput{
		SessionID:       s.pendingID,
		Correlation:     s.correlation,
		PreStudy:        s.prestudy,
		PreStudySchema:  s.cfg.PreStudy,
		Conversation:    s.conversation,
		EssayText:       s.essay,
		RequireArtifact: s.cfg.RequireArtifact,
		PostStudy:       s.poststudy,
		PostStudySchema: s.cfg.PostStudy,
		ReferenceDocURL: s.cfg.ReferenceDocURL,
	})
	if err != nil {
		var perr *service.PersistenceError
		if errors.As(err, &perr) && rec != nil {
			s.pendingID = rec.SessionID
		}
		return rec, err
	}

	s.advance() // Closed, momentarily
	s.reset()
	return rec, nil
}

func (s *Session) advance() {
	if s.pos < len(s.sequence)-1 {
		s.pos++
	}
}
