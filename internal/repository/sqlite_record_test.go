package repository

import (
	"context"
	"testing"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepo_PutAndGetByID(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestRecord(
		testutil.WithCorrelation("P123", "A456", "PRJ789"),
		testutil.WithConversation(testutil.SampleTurns()),
	)
	require.NoError(t, repo.Put(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.SessionID)
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, fetched.SessionID)
	assert.Equal(t, rec.CreatedAt.Unix(), fetched.CreatedAt.Unix())
	assert.Equal(t, "P123", fetched.Correlation.ParticipantID)
	assert.Equal(t, "A456", fetched.Correlation.AssignmentID)
	assert.Equal(t, "PRJ789", fetched.Correlation.ProjectID)
	assert.Equal(t, rec.EssayText, fetched.EssayText)
	assert.Equal(t, rec.PreStudy["ai_improve_writing"], fetched.PreStudy["ai_improve_writing"])
	assert.Equal(t, rec.PostStudy["essay_experience"], fetched.PostStudy["essay_experience"])
}

func TestRecordRepo_ConversationRoundTrip(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	turns := []domain.Turn{
		{Role: domain.RoleUser, Text: "hello", Seq: 0},
		{Role: domain.RoleAssistant, Text: "hi", Seq: 1},
		{Role: domain.RoleUser, Text: "outline?", Seq: 2},
		{Role: domain.RoleAssistant, Text: "⚠️ Assistant error: assistant request timed out", Seq: 3},
	}
	rec := testutil.NewTestRecord(testutil.WithConversation(turns))
	require.NoError(t, repo.Put(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.SessionID)
	require.NoError(t, err)
	assert.Equal(t, turns, fetched.Conversation)
}

func TestRecordRepo_NoConversationVariant(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestRecord()
	require.NoError(t, repo.Put(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.SessionID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Conversation)
}

func TestRecordRepo_PutIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecordRepo(database)
	ctx := context.Background()

	rec := testutil.NewTestRecord(testutil.WithConversation(testutil.SampleTurns()))
	require.NoError(t, repo.Put(ctx, rec))
	require.NoError(t, repo.Put(ctx, rec))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM session_records`).Scan(&count))
	assert.Equal(t, 1, count, "repeated put must not duplicate the record")

	fetched, err := repo.GetByID(ctx, rec.SessionID)
	require.NoError(t, err)
	assert.Len(t, fetched.Conversation, 2, "turns must not duplicate either")
}

func TestRecordRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRepo_List(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestRecord(
		testutil.WithCorrelation("P1", "", ""),
		testutil.WithConversation(testutil.SampleTurns()),
		testutil.WithEssay(testutil.Essay(320)),
	)
	second := testutil.NewTestRecord(testutil.WithCorrelation("P2", "", ""))
	require.NoError(t, repo.Put(ctx, first))
	require.NoError(t, repo.Put(ctx, second))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byParticipant := map[string]RecordSummary{}
	for _, s := range summaries {
		byParticipant[s.ParticipantID] = s
	}
	assert.Equal(t, 2, byParticipant["P1"].TurnCount)
	assert.Equal(t, 320, byParticipant["P1"].EssayWords)
	assert.Equal(t, 0, byParticipant["P2"].TurnCount)
}

func TestRecordRepo_Delete(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestRecord()
	require.NoError(t, repo.Put(ctx, rec))
	require.NoError(t, repo.Delete(ctx, rec.SessionID))

	_, err := repo.GetByID(ctx, rec.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, rec.SessionID), ErrNotFound)
}
