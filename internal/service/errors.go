package service

import (
	"fmt"
	"strings"
)

// ConstructionError indicates Finalize was invoked while the
// completeness invariant does not hold. The state machine's guards
// make this unreachable in normal operation, so it is treated as an
// internal-consistency fault rather than a user-facing validation
// message.
type ConstructionError struct {
	Missing map[string][]string // phase → missing question keys
	Reason  string
}

func (e *ConstructionError) Error() string {
	if e.Reason != "" {
		return "session record construction: " + e.Reason
	}
	var parts []string
	for phase, keys := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s missing %s", phase, strings.Join(keys, ", ")))
	}
	return "session record construction: " + strings.Join(parts, "; ")
}

// PersistenceError indicates the durable store rejected the record.
// The constructed record is retained by the caller for a retried
// Finalize; the session must not be reset until a put succeeds.
type PersistenceError struct {
	SessionID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting session record %s: %v", e.SessionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
