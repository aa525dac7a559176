package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerKind discriminates the variants of AnswerValue.
type AnswerKind string

const (
	AnswerUnset        AnswerKind = "unset"
	AnswerSingleChoice AnswerKind = "single"
	AnswerMultiChoice  AnswerKind = "multi"
	AnswerFreeText     AnswerKind = "text"
)

// AnswerValue is the tagged union of possible question answers:
// a single chosen label, an ordered set of chosen labels, free text,
// or unset. The zero value is Unset.
type AnswerValue struct {
	kind   AnswerKind
	label  string
	labels []string
	text   string
}

// Unset returns the unanswered value.
func Unset() AnswerValue {
	return AnswerValue{kind: AnswerUnset}
}

// SingleChoice returns an answer holding one chosen label.
func SingleChoice(label string) AnswerValue {
	return AnswerValue{kind: AnswerSingleChoice, label: label}
}

// MultiChoice returns an answer holding an ordered set of chosen labels.
// The slice is copied; selection order is preserved.
func MultiChoice(labels []string) AnswerValue {
	return AnswerValue{kind: AnswerMultiChoice, labels: append([]string(nil), labels...)}
}

// FreeText returns an answer holding free-form text.
func FreeText(text string) AnswerValue {
	return AnswerValue{kind: AnswerFreeText, text: text}
}

// Kind returns the variant tag. The zero value reports AnswerUnset.
func (a AnswerValue) Kind() AnswerKind {
	if a.kind == "" {
		return AnswerUnset
	}
	return a.kind
}

// Label returns the chosen label for a single-choice answer, else "".
func (a AnswerValue) Label() string { return a.label }

// Labels returns a copy of the chosen labels for a multi-choice answer.
func (a AnswerValue) Labels() []string {
	return append([]string(nil), a.labels...)
}

// Text returns the free text for a text answer, else "".
func (a AnswerValue) Text() string { return a.text }

// IsEmpty reports whether the answer counts as missing for the
// completeness check: unset, an empty or blank string, or an empty
// label set.
func (a AnswerValue) IsEmpty() bool {
	switch a.Kind() {
	case AnswerSingleChoice:
		return a.label == ""
	case AnswerMultiChoice:
		return len(a.labels) == 0
	case AnswerFreeText:
		return strings.TrimSpace(a.text) == ""
	default:
		return true
	}
}

// Contains reports whether the answer includes the given label.
// For multi-choice this is a membership test over the selected set;
// for single-choice an equality test. Unset and free text never match.
func (a AnswerValue) Contains(label string) bool {
	switch a.Kind() {
	case AnswerSingleChoice:
		return a.label == label
	case AnswerMultiChoice:
		for _, l := range a.labels {
			if l == label {
				return true
			}
		}
	}
	return false
}

// Display returns a human-readable rendering of the answer.
func (a AnswerValue) Display() string {
	switch a.Kind() {
	case AnswerSingleChoice:
		return a.label
	case AnswerMultiChoice:
		return strings.Join(a.labels, "; ")
	case AnswerFreeText:
		return a.text
	default:
		return ""
	}
}

// answerJSON is the wire shape of AnswerValue.
type answerJSON struct {
	Kind   AnswerKind `json:"kind"`
	Label  string     `json:"label,omitempty"`
	Labels []string   `json:"labels,omitempty"`
	Text   string     `json:"text,omitempty"`
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerJSON{
		Kind:   a.Kind(),
		Label:  a.label,
		Labels: a.labels,
		Text:   a.text,
	})
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw answerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding answer value: %w", err)
	}
	switch raw.Kind {
	case AnswerUnset, "":
		*a = Unset()
	case AnswerSingleChoice:
		*a = SingleChoice(raw.Label)
	case AnswerMultiChoice:
		*a = MultiChoice(raw.Labels)
	case AnswerFreeText:
		*a = FreeText(raw.Text)
	default:
		return fmt.Errorf("unknown answer kind %q", raw.Kind)
	}
	return nil
}
