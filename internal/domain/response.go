package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ErrFrozen is returned when mutating a response set or conversation
// log after its phase has been exited.
var ErrFrozen = fmt.Errorf("phase already exited; responses are read-only")

// ResponseSet maps question keys to answer values for one phase.
// It records answers without cross-field validation; completeness
// checks live in the schema package. Once the phase is exited forward
// the set is frozen and further writes are rejected.
type ResponseSet struct {
	answers map[string]AnswerValue
	frozen  bool
}

// NewResponseSet creates an empty response set.
func NewResponseSet() *ResponseSet {
	return &ResponseSet{answers: make(map[string]AnswerValue)}
}

// Set records the answer for a question key, overwriting any prior
// value. Returns ErrFrozen once the set has been frozen.
func (rs *ResponseSet) Set(key string, value AnswerValue) error {
	if rs.frozen {
		return ErrFrozen
	}
	rs.answers[key] = value
	return nil
}

// Get returns the recorded answer for key, or Unset when absent.
func (rs *ResponseSet) Get(key string) AnswerValue {
	if v, ok := rs.answers[key]; ok {
		return v
	}
	return Unset()
}

// Has reports whether any value (including an empty one) was recorded
// for key.
func (rs *ResponseSet) Has(key string) bool {
	_, ok := rs.answers[key]
	return ok
}

// Len returns the number of recorded answers.
func (rs *ResponseSet) Len() int { return len(rs.answers) }

// Freeze makes the set read-only. Idempotent.
func (rs *ResponseSet) Freeze() { rs.frozen = true }

// Frozen reports whether the set is read-only.
func (rs *ResponseSet) Frozen() bool { return rs.frozen }

// Snapshot returns a copy of the recorded answers, decoupled from
// further mutation of the set.
func (rs *ResponseSet) Snapshot() map[string]AnswerValue {
	out := make(map[string]AnswerValue, len(rs.answers))
	for k, v := range rs.answers {
		out[k] = v
	}
	return out
}

// Keys returns the recorded question keys in lexical order.
func (rs *ResponseSet) Keys() []string {
	keys := make([]string, 0, len(rs.answers))
	for k := range rs.answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the answers as a plain key→answer object.
func (rs *ResponseSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.answers)
}

// UnmarshalJSON decodes a key→answer object into an unfrozen set.
func (rs *ResponseSet) UnmarshalJSON(data []byte) error {
	answers := make(map[string]AnswerValue)
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("decoding response set: %w", err)
	}
	rs.answers = answers
	rs.frozen = false
	return nil
}
