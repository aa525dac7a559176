// Package chat manages the round-trip between a submitted participant
// message and the assistant gateway.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/mabdulhai/studyflow/internal/assistant"
	"github.com/mabdulhai/studyflow/internal/domain"
)

// DefaultSystemPrompt is the fixed instruction sent ahead of the
// conversation history on every gateway call.
const DefaultSystemPrompt = "You are a friendly and helpful assistant."

// ErrorMarker prefixes the assistant turn recorded in place of a reply
// when the gateway call fails. It stays in the log so the participant
// (and the stored record) can see that an exchange failed.
const ErrorMarker = "⚠️ Assistant error:"

// Exchange drives one session's conversation with the assistant. It is
// owned by a single session and is not safe for concurrent use; the
// session model is single-threaded per action.
type Exchange struct {
	log          *domain.ConversationLog
	gateway      assistant.Gateway
	systemPrompt string
}

// NewExchange creates an Exchange appending to the given log.
func NewExchange(log *domain.ConversationLog, gateway assistant.Gateway) *Exchange {
	return &Exchange{
		log:          log,
		gateway:      gateway,
		systemPrompt: DefaultSystemPrompt,
	}
}

// Log returns the conversation log the exchange appends to.
func (e *Exchange) Log() *domain.ConversationLog { return e.log }

// Submit sends a participant message and records the round-trip.
//
// A message that is empty after trimming is a silent no-op: no turn is
// appended and no gateway call is made. Otherwise a user turn is
// appended, the gateway is invoked with the full turn history, and an
// assistant turn is appended — carrying either the reply text or, on
// any gateway fault, a visible error marker with the fault detail. A
// fault never propagates; the conversation stays usable.
//
// The returned turns are the ones appended by this call.
func (e *Exchange) Submit(ctx context.Context, userText string) ([]domain.Turn, error) {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return nil, nil
	}

	if err := e.log.Append(domain.RoleUser, trimmed); err != nil {
		return nil, fmt.Errorf("recording user turn: %w", err)
	}

	reply, err := e.gateway.Complete(ctx, e.log.Turns(), e.systemPrompt)

	var assistantText string
	if err != nil {
		assistantText = fmt.Sprintf("%s %v", ErrorMarker, err)
	} else {
		assistantText = reply.Text
	}

	if err := e.log.Append(domain.RoleAssistant, assistantText); err != nil {
		return nil, fmt.Errorf("recording assistant turn: %w", err)
	}

	turns := e.log.Turns()
	return turns[len(turns)-2:], nil
}
