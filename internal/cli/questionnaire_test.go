package cli

import (
	"testing"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holderFor(t *testing.T, q *questionnaire, key string) *answerHolder {
	t.Helper()
	for _, h := range q.holders {
		if h.question.Key == key {
			return h
		}
	}
	t.Fatalf("no holder for %s", key)
	return nil
}

func TestQuestionnaire_ApplyWritesAllKinds(t *testing.T) {
	q := newQuestionnaire(schema.PreStudy())
	holderFor(t, q, "ai_improve_writing").single = "Agree"
	holderFor(t, q, "ai_use_case").multi = []string{"Not at all"}
	holderFor(t, q, "llm_last_experience").text = "used it for a cover letter"

	rs := domain.NewResponseSet()
	require.NoError(t, q.apply(rs))

	assert.Equal(t, "Agree", rs.Get("ai_improve_writing").Label())
	assert.Equal(t, []string{"Not at all"}, rs.Get("ai_use_case").Labels())
	assert.Equal(t, "used it for a cover letter", rs.Get("llm_last_experience").Text())
	assert.True(t, rs.Get("llm_use_frequency").IsEmpty(), "untouched questions stay unanswered")
}

func TestQuestionnaire_DeselectedTriggerDropsConditionalText(t *testing.T) {
	q := newQuestionnaire(schema.PreStudy())
	holderFor(t, q, "ai_use_case").multi = []string{schema.OtherOption}
	holderFor(t, q, "other_use_case").text = "grading homework"

	rs := domain.NewResponseSet()
	require.NoError(t, q.apply(rs))
	assert.Equal(t, "grading homework", rs.Get("other_use_case").Text())

	// The participant goes back and deselects "Other"; the stale text
	// must not survive into the responses.
	holderFor(t, q, "ai_use_case").multi = []string{"Not at all"}
	require.NoError(t, q.apply(rs))
	assert.True(t, rs.Get("other_use_case").IsEmpty())
}

func TestQuestionnaire_HoldersSurviveRebuild(t *testing.T) {
	q := newQuestionnaire(schema.PostStudy())
	holderFor(t, q, "satisfied_with_essay").single = "Neutral"

	// Rebuilding the form (as the retry loop does) must not reset answers.
	_ = q.form()
	assert.Equal(t, "Neutral", q.answerFor("satisfied_with_essay").Label())
}

func TestMissingNotice_NamesPrompts(t *testing.T) {
	ps := schema.PreStudy()
	notice := missingNotice(ps, []string{"ai_improve_writing", "no_such_key"})

	assert.Contains(t, notice, "I believe AI tools can improve my writing quality.")
	assert.Contains(t, notice, "no_such_key", "unknown keys fall back to the raw key")
}
