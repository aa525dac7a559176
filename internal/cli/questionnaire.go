package cli

import (
	"fmt"
	"strings"

	"github.com/mabdulhai/studyflow/internal/cli/formatter"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
	"github.com/charmbracelet/huh"
)

// answerHolder binds one question to the form values huh writes into.
// Holders persist across form re-runs so a participant sent back for a
// missing answer keeps everything already filled in.
type answerHolder struct {
	question schema.Question
	single   string
	multi    []string
	text     string
}

// questionnaire owns the holders for one phase's question set.
type questionnaire struct {
	schema  schema.PhaseSchema
	holders []*answerHolder
}

func newQuestionnaire(ps schema.PhaseSchema) *questionnaire {
	q := &questionnaire{schema: ps}
	for _, question := range ps.Questions {
		q.holders = append(q.holders, &answerHolder{question: question})
	}
	return q
}

// form builds a fresh huh form over the persistent holders, one group
// per question. Conditional questions hide until their sibling holds
// the sentinel choice.
func (q *questionnaire) form() *huh.Form {
	groups := make([]*huh.Group, 0, len(q.holders))
	for _, h := range q.holders {
		group := huh.NewGroup(q.fieldFor(h))
		if cond := h.question.ConditionalOn; cond != nil {
			group = group.WithHideFunc(func() bool {
				return !q.answerFor(cond.SiblingKey).Contains(cond.Sentinel)
			})
		}
		groups = append(groups, group)
	}
	return huh.NewForm(groups...).WithTheme(studyflowHuhTheme()).WithShowHelp(true)
}

func (q *questionnaire) fieldFor(h *answerHolder) huh.Field {
	title := h.question.Prompt
	if h.question.Optional {
		title += " (optional)"
	}

	switch h.question.Kind {
	case domain.AnswerMultiChoice:
		options := make([]huh.Option[string], 0, len(h.question.Options))
		for _, opt := range h.question.Options {
			options = append(options, huh.NewOption(opt, opt))
		}
		return huh.NewMultiSelect[string]().
			Title(title).
			Options(options...).
			Value(&h.multi)

	case domain.AnswerFreeText:
		return huh.NewText().
			Title(title).
			Value(&h.text)

	default:
		options := make([]huh.Option[string], 0, len(h.question.Options))
		for _, opt := range h.question.Options {
			options = append(options, huh.NewOption(opt, opt))
		}
		return huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(&h.single)
	}
}

// answerFor returns the current value held for a question key.
func (q *questionnaire) answerFor(key string) domain.AnswerValue {
	for _, h := range q.holders {
		if h.question.Key == key {
			return h.value()
		}
	}
	return domain.Unset()
}

func (h *answerHolder) value() domain.AnswerValue {
	switch h.question.Kind {
	case domain.AnswerMultiChoice:
		return domain.MultiChoice(h.multi)
	case domain.AnswerFreeText:
		return domain.FreeText(h.text)
	default:
		if h.single == "" {
			return domain.Unset()
		}
		return domain.SingleChoice(h.single)
	}
}

// apply writes every held answer into the response set. Conditional
// questions whose trigger is no longer selected are written as unset so
// a deselected "Other" cannot smuggle stale text into the record.
func (q *questionnaire) apply(rs *domain.ResponseSet) error {
	for _, h := range q.holders {
		val := h.value()
		if cond := h.question.ConditionalOn; cond != nil {
			if !q.answerFor(cond.SiblingKey).Contains(cond.Sentinel) {
				val = domain.Unset()
			}
		}
		if err := rs.Set(h.question.Key, val); err != nil {
			return fmt.Errorf("recording answer %s: %w", h.question.Key, err)
		}
	}
	return nil
}

// missingNotice renders the validation feedback shown when a phase
// transition is refused, naming each unanswered question by prompt.
func missingNotice(ps schema.PhaseSchema, missing []string) string {
	var b strings.Builder
	b.WriteString(formatter.Warn("Please answer all required questions:") + "\n")
	for _, key := range missing {
		prompt := key
		if q, ok := ps.Lookup(key); ok {
			prompt = q.Prompt
		}
		b.WriteString("  " + formatter.Dim("• ") + formatter.Preview(prompt, 80) + "\n")
	}
	return b.String()
}
