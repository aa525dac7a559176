package domain

// Turn is one message in the conversation log.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	Seq  int    `json:"seq"`
}

// ConversationLog is the ordered, append-only sequence of role-tagged
// turns exchanged during the task phase. It is owned exclusively by
// one session and closed (read-only) when the task phase is exited.
type ConversationLog struct {
	turns  []Turn
	closed bool
}

// NewConversationLog creates an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds a turn with the next sequence index.
// Returns ErrFrozen once the log has been closed.
func (c *ConversationLog) Append(role Role, text string) error {
	if c.closed {
		return ErrFrozen
	}
	c.turns = append(c.turns, Turn{Role: role, Text: text, Seq: len(c.turns)})
	return nil
}

// Turns returns a copy of the turns in sequence order.
func (c *ConversationLog) Turns() []Turn {
	return append([]Turn(nil), c.turns...)
}

// Len returns the number of turns.
func (c *ConversationLog) Len() int { return len(c.turns) }

// Last returns the most recent turn and true, or a zero Turn and
// false when the log is empty.
func (c *ConversationLog) Last() (Turn, bool) {
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// Close makes the log read-only. Idempotent.
func (c *ConversationLog) Close() { c.closed = true }

// Closed reports whether the log is read-only.
func (c *ConversationLog) Closed() bool { return c.closed }
