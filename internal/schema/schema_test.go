package schema

import (
	"testing"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillPreStudy answers every required pre-study question with neutral values.
func fillPreStudy(t *testing.T, rs *domain.ResponseSet) {
	t.Helper()
	for _, key := range []string{
		"ai_improve_writing", "ai_understand_style", "ai_trust_accuracy",
		"ai_academic_acceptability", "struggle_structure", "confident_writer",
		"writing_time", "writing_enjoyable",
	} {
		require.NoError(t, rs.Set(key, domain.SingleChoice("Neutral")))
	}
	require.NoError(t, rs.Set("ai_use_case", domain.MultiChoice([]string{"Not at all"})))
	require.NoError(t, rs.Set("llm_use_frequency", domain.SingleChoice("Never")))
	require.NoError(t, rs.Set("llm_last_experience", domain.FreeText("none")))
}

func TestUnanswered_EmptySetReportsAllRequired(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()

	missing := s.Unanswered(rs)

	// Conditional and optional questions are not missing on an empty set.
	assert.NotContains(t, missing, "other_use_case")
	assert.NotContains(t, missing, "llm_use_purpose")
	assert.NotContains(t, missing, "llm_use_purpose_other")
	assert.Contains(t, missing, "ai_improve_writing")
	assert.Contains(t, missing, "llm_last_experience")
	assert.Len(t, missing, 11)
}

func TestUnanswered_CompleteSetIsEmpty(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()
	fillPreStudy(t, rs)

	// The optional multiselect may stay empty without blocking.
	require.NoError(t, rs.Set("llm_use_purpose", domain.MultiChoice(nil)))

	assert.Empty(t, s.Unanswered(rs))
	assert.True(t, s.Complete(rs))
}

func TestUnanswered_ConditionalRequiredWhileSentinelSelected(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()
	fillPreStudy(t, rs)

	require.NoError(t, rs.Set("ai_use_case", domain.MultiChoice([]string{OtherOption})))
	assert.Equal(t, []string{"other_use_case"}, s.Unanswered(rs))

	require.NoError(t, rs.Set("other_use_case", domain.FreeText("checking citations")))
	assert.Empty(t, s.Unanswered(rs))
}

func TestUnanswered_ConditionalExemptionIsDynamic(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()
	fillPreStudy(t, rs)

	// Select the sentinel, fill the conditional, then deselect the
	// sentinel again: the stale conditional answer must not resurface
	// as required or missing.
	require.NoError(t, rs.Set("ai_use_case", domain.MultiChoice([]string{OtherOption})))
	require.NoError(t, rs.Set("other_use_case", domain.FreeText("")))
	assert.Equal(t, []string{"other_use_case"}, s.Unanswered(rs))

	require.NoError(t, rs.Set("ai_use_case", domain.MultiChoice([]string{"Not at all"})))
	assert.Empty(t, s.Unanswered(rs))
}

func TestUnanswered_MembershipTestOverMultiChoice(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()
	fillPreStudy(t, rs)

	// The sentinel counts when selected alongside other options, not
	// only when it is the sole selection.
	require.NoError(t, rs.Set("ai_use_case", domain.MultiChoice([]string{
		"Help brainstorm or outline ideas", OtherOption,
	})))
	assert.Equal(t, []string{"other_use_case"}, s.Unanswered(rs))
}

func TestUnanswered_IsDeterministic(t *testing.T) {
	s := PreStudy()
	rs := domain.NewResponseSet()
	require.NoError(t, rs.Set("ai_improve_writing", domain.SingleChoice("Agree")))

	first := s.Unanswered(rs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Unanswered(rs))
	}
}

func TestUnanswered_BlankTextCountsAsMissing(t *testing.T) {
	s := PostStudy()
	rs := domain.NewResponseSet()
	for _, q := range s.Questions {
		if q.Kind == domain.AnswerSingleChoice {
			require.NoError(t, rs.Set(q.Key, domain.SingleChoice(q.Options[0])))
		}
	}
	require.NoError(t, rs.Set("essay_experience", domain.FreeText("   ")))

	assert.Equal(t, []string{"essay_experience"}, s.Unanswered(rs))
}

func TestPostStudyUnassisted_OmitsAssistantQuestions(t *testing.T) {
	s := PostStudyUnassisted()

	_, hasPercent := s.Lookup("percent_llm_generated")
	assert.False(t, hasPercent)
	_, hasCollab := s.Lookup("collaboration")
	assert.False(t, hasCollab)
	_, hasSatisfied := s.Lookup("satisfied_with_essay")
	assert.True(t, hasSatisfied)
	assert.Len(t, s.Questions, 6)
}

func TestPreStudy_QuestionOrderIsStable(t *testing.T) {
	s := PreStudy()
	require.NotEmpty(t, s.Questions)
	assert.Equal(t, "ai_improve_writing", s.Questions[0].Key)
	assert.Equal(t, "llm_last_experience", s.Questions[len(s.Questions)-1].Key)

	q, ok := s.Lookup("other_use_case")
	require.True(t, ok)
	require.NotNil(t, q.ConditionalOn)
	assert.Equal(t, "ai_use_case", q.ConditionalOn.SiblingKey)
	assert.Equal(t, OtherOption, q.ConditionalOn.Sentinel)
}
