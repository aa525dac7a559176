package formatter

import (
	"fmt"
	"strings"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
)

// FormatRecordDetail renders a stored session record for `sessions show`.
// Questionnaire answers are labeled with their prompts when the schema
// still declares the key, falling back to the raw key otherwise.
func FormatRecordDetail(rec *domain.SessionRecord, pre, post schema.PhaseSchema) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Session"), rec.SessionID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Created"), HumanDate(rec.CreatedAt)))
	if rec.Correlation.ParticipantID != "" {
		b.WriteString(fmt.Sprintf("%s %s", Dim("Participant"), rec.Correlation.ParticipantID))
		if rec.Correlation.AssignmentID != "" {
			b.WriteString(Dim("  assignment ") + rec.Correlation.AssignmentID)
		}
		if rec.Correlation.ProjectID != "" {
			b.WriteString(Dim("  project ") + rec.Correlation.ProjectID)
		}
		b.WriteString("\n")
	}
	if rec.ReferenceDocURL != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Reference doc"), rec.ReferenceDocURL))
	}

	b.WriteString("\n" + Header("Pre-study") + "\n")
	writeAnswers(&b, rec.PreStudy, pre)

	if rec.Conversation != nil {
		b.WriteString("\n" + Header("Conversation") + "\n")
		for _, turn := range rec.Conversation {
			speaker := StyleBlue.Render("You")
			if turn.Role == domain.RoleAssistant {
				speaker = StylePurple.Render("Assistant")
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", speaker, Preview(turn.Text, 100)))
		}
	}

	if rec.EssayText != "" {
		words := len(strings.Fields(rec.EssayText))
		b.WriteString("\n" + Header("Essay") + "\n")
		b.WriteString(fmt.Sprintf("%s\n%s\n", Dim(fmt.Sprintf("%d words", words)), rec.EssayText))
	}

	b.WriteString("\n" + Header("Post-study") + "\n")
	writeAnswers(&b, rec.PostStudy, post)

	return b.String()
}

func writeAnswers(b *strings.Builder, answers map[string]domain.AnswerValue, ps schema.PhaseSchema) {
	for _, q := range ps.Questions {
		val, ok := answers[q.Key]
		if !ok || val.IsEmpty() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n  %s\n", Dim(Preview(q.Prompt, 90)), val.Display()))
	}
	// Answers recorded under keys the schema no longer declares.
	for key, val := range answers {
		if _, ok := ps.Lookup(key); ok || val.IsEmpty() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n  %s\n", Dim(key), val.Display()))
	}
}
