// Package schema declares the per-phase question sets and the
// completeness predicate that gates phase transitions.
package schema

import "github.com/mabdulhai/studyflow/internal/domain"

// Condition makes a question required only while its sibling question
// currently holds the sentinel label. For multi-choice siblings this
// is a membership test over the selected set; for single-choice an
// equality test.
type Condition struct {
	SiblingKey string
	Sentinel   string
}

// Question declares one entry of a phase questionnaire.
type Question struct {
	Key     string
	Prompt  string
	Kind    domain.AnswerKind
	Options []string

	// Optional questions are never reported as missing.
	Optional bool

	// ConditionalOn, when set, exempts the question from the
	// completeness check unless the sibling condition holds.
	ConditionalOn *Condition
}

// PhaseSchema is the ordered question set for one phase.
type PhaseSchema struct {
	Phase     domain.Phase
	Title     string
	Questions []Question
}

// Unanswered returns the keys of questions still missing an answer, in
// schema order. A question counts as missing when its recorded value
// is empty (unset, blank text, or an empty selection). Conditional
// questions are evaluated against the sibling's current value, never a
// cached one, so filling a conditional field and then deselecting its
// trigger removes it from the missing set.
func (s PhaseSchema) Unanswered(rs *domain.ResponseSet) []string {
	var missing []string
	for _, q := range s.Questions {
		if q.Optional {
			continue
		}
		if q.ConditionalOn != nil {
			sibling := rs.Get(q.ConditionalOn.SiblingKey)
			if !sibling.Contains(q.ConditionalOn.Sentinel) {
				continue
			}
		}
		if rs.Get(q.Key).IsEmpty() {
			missing = append(missing, q.Key)
		}
	}
	return missing
}

// Complete reports whether every required question has an answer.
func (s PhaseSchema) Complete(rs *domain.ResponseSet) bool {
	return len(s.Unanswered(rs)) == 0
}

// Lookup returns the question with the given key, if declared.
func (s PhaseSchema) Lookup(key string) (Question, bool) {
	for _, q := range s.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}
