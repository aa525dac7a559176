package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/mabdulhai/studyflow/internal/assistant"
	"github.com/mabdulhai/studyflow/internal/chat"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/session"
	"github.com/mabdulhai/studyflow/internal/teatest"
	"github.com/mabdulhai/studyflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	reply string
	err   error
}

func (g *stubGateway) Complete(_ context.Context, _ []domain.Turn, _ string) (*assistant.Completion, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &assistant.Completion{Text: g.reply}, nil
}

func (g *stubGateway) Available(context.Context) bool { return g.err == nil }

func driveTaskView(t *testing.T, sess *session.Session, gateway assistant.Gateway) *teatest.Driver {
	t.Helper()
	exchange := chat.NewExchange(sess.Conversation(), gateway)
	d := teatest.New(t, newTaskModel(sess, exchange, session.DefaultEssayPrompt))
	d.DrainInit()
	return d
}

func TestTaskView_ChatRoundTrip(t *testing.T) {
	sess := taskSession(t)
	d := driveTaskView(t, sess, &stubGateway{reply: "try a thesis statement first"})

	d.PressTab() // focus chat
	d.Type("how should I start?")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "how should I start?")
	assert.Contains(t, view, "try a thesis statement first")

	turns := sess.Conversation().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
}

func TestTaskView_GatewayFaultShowsMarkerAndKeepsSessionUsable(t *testing.T) {
	sess := taskSession(t)
	gateway := &stubGateway{err: errors.New("connection refused")}
	d := driveTaskView(t, sess, gateway)

	d.PressTab()
	d.Type("anyone there?")
	d.PressEnter()

	assert.Contains(t, d.View(), chat.ErrorMarker)

	// The fault is recorded, not fatal; the next exchange succeeds.
	gateway.err = nil
	gateway.reply = "back online"
	d.Type("and now?")
	d.PressEnter()

	assert.Contains(t, d.View(), "back online")
	assert.Len(t, sess.Conversation().Turns(), 4)
}

func TestTaskView_FinishFlow(t *testing.T) {
	sess := taskSession(t)
	d := driveTaskView(t, sess, &stubGateway{reply: "ok"})

	// Essay pane is focused on start; type the essay, then finish.
	d.Type(testutil.Essay(40))
	d.PressCtrlD()

	assert.True(t, d.Quitting)
	assert.Equal(t, domain.PhasePostStudy, sess.Phase())
	assert.NotEmpty(t, sess.Essay())
}

func TestTaskView_FinishRefusedWithEmptyEssay(t *testing.T) {
	sess := taskSession(t)
	d := driveTaskView(t, sess, &stubGateway{reply: "ok"})

	d.PressCtrlD()

	assert.False(t, d.Quitting)
	assert.Equal(t, domain.PhaseTask, sess.Phase())
	assert.Contains(t, d.View(), "Please write your essay")
}
