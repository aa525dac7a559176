package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/mabdulhai/studyflow/internal/assistant"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway returns a canned reply or error and records call history.
type stubGateway struct {
	reply     string
	err       error
	calls     int
	histories [][]domain.Turn
	systems   []string
}

func (g *stubGateway) Complete(_ context.Context, history []domain.Turn, systemPrompt string) (*assistant.Completion, error) {
	g.calls++
	g.histories = append(g.histories, history)
	g.systems = append(g.systems, systemPrompt)
	if g.err != nil {
		return nil, g.err
	}
	return &assistant.Completion{Text: g.reply}, nil
}

func (g *stubGateway) Available(context.Context) bool { return g.err == nil }

func TestSubmit_EmptyInputIsNoOp(t *testing.T) {
	gw := &stubGateway{reply: "hi"}
	ex := NewExchange(domain.NewConversationLog(), gw)

	for _, input := range []string{"", "   ", "\n\t "} {
		turns, err := ex.Submit(context.Background(), input)
		require.NoError(t, err)
		assert.Nil(t, turns)
	}

	assert.Equal(t, 0, gw.calls)
	assert.Equal(t, 0, ex.Log().Len())
}

func TestSubmit_SuccessAppendsRoundTrip(t *testing.T) {
	gw := &stubGateway{reply: "hi"}
	ex := NewExchange(domain.NewConversationLog(), gw)

	turns, err := ex.Submit(context.Background(), "hello")
	require.NoError(t, err)

	require.Len(t, turns, 2)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Text: "hello", Seq: 0}, turns[0])
	assert.Equal(t, domain.Turn{Role: domain.RoleAssistant, Text: "hi", Seq: 1}, turns[1])
	assert.Equal(t, 2, ex.Log().Len())

	// The gateway sees the history ending with the newest user turn,
	// plus the fixed system instruction.
	require.Equal(t, 1, gw.calls)
	history := gw.histories[0]
	require.NotEmpty(t, history)
	assert.Equal(t, domain.RoleUser, history[len(history)-1].Role)
	assert.Equal(t, "hello", history[len(history)-1].Text)
	assert.Equal(t, DefaultSystemPrompt, gw.systems[0])
}

func TestSubmit_TrimsUserText(t *testing.T) {
	gw := &stubGateway{reply: "hi"}
	ex := NewExchange(domain.NewConversationLog(), gw)

	turns, err := ex.Submit(context.Background(), "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", turns[0].Text)
}

func TestSubmit_GatewayFaultRecordsMarkerTurn(t *testing.T) {
	gw := &stubGateway{err: assistant.ErrTimeout}
	ex := NewExchange(domain.NewConversationLog(), gw)

	turns, err := ex.Submit(context.Background(), "hello")
	require.NoError(t, err, "a gateway fault must not propagate")

	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Contains(t, turns[1].Text, ErrorMarker)
	assert.Contains(t, turns[1].Text, assistant.ErrTimeout.Error())
}

func TestSubmit_SessionUsableAfterFault(t *testing.T) {
	gw := &stubGateway{err: errors.New("boom")}
	ex := NewExchange(domain.NewConversationLog(), gw)

	_, err := ex.Submit(context.Background(), "first")
	require.NoError(t, err)

	// Gateway recovers; the next exchange succeeds normally.
	gw.err = nil
	gw.reply = "back online"
	turns, err := ex.Submit(context.Background(), "second")
	require.NoError(t, err)

	assert.Equal(t, "back online", turns[1].Text)
	assert.Equal(t, 4, ex.Log().Len())

	// Sequence indexes stay strictly ordered across the fault.
	for i, turn := range ex.Log().Turns() {
		assert.Equal(t, i, turn.Seq)
	}
}

func TestSubmit_ClosedLogRejectsSubmission(t *testing.T) {
	gw := &stubGateway{reply: "hi"}
	log := domain.NewConversationLog()
	ex := NewExchange(log, gw)

	log.Close()
	_, err := ex.Submit(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrFrozen)
	assert.Equal(t, 0, gw.calls)
}
