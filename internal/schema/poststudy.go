package schema

import "github.com/mabdulhai/studyflow/internal/domain"

// PercentOptions are the answer choices for how much of the essay was
// assistant-generated.
var PercentOptions = []string{"0%", "20%", "40%", "60%", "80%", "100%"}

// CreativityOptions are the answer choices for self-assessed creativity.
var CreativityOptions = []string{
	"Very creative",
	"Somewhat creative",
	"Neither creative nor uncreative",
	"Somewhat uncreative",
	"Not at all creative",
}

// reflectionPrompts are the Likert reflection statements on working
// with the assistant, in presentation order.
var reflectionPrompts = []struct {
	key    string
	prompt string
}{
	{"idea_generation", "The LLM helped me generate ideas more effectively."},
	{"feedback_quality", "The model's feedback improved the quality of my essay."},
	{"irrelevant_suggestions", "The LLM's suggestions were irrelevant to my goals."},
	{"learned_about_writing", "I learned something new about writing from using the LLM."},
	{"lost_control", "I felt I had less control of the essay writing process when working with the LLM."},
	{"too_much_initiative", "The model took too much initiative in generating content."},
	{"collaboration", "I felt that the LLM and I were collaborating as partners."},
	{"matched_assistance", "The model's behavior matched my preferred level of assistance."},
	{"distrust_suggestions", "I did not trust the LLM's writing suggestions."},
	{"would_not_use_again", "I would not use this LLM again for a similar writing task."},
	{"question_originality", "Using the LLM made me question what counts as original writing."},
	{"would_disclose", "I would disclose AI assistance if submitting this essay academically."},
}

// PostStudy returns the post-study questionnaire for assistant-enabled
// sessions: assistant involvement, reflections on working with it, and
// reflections on the essay.
func PostStudy() PhaseSchema {
	questions := []Question{
		{
			Key:     "percent_llm_generated",
			Prompt:  "What percentage of the document would you say was LLM-generated?",
			Kind:    domain.AnswerSingleChoice,
			Options: PercentOptions,
		},
	}
	for _, r := range reflectionPrompts {
		questions = append(questions, Question{
			Key:     r.key,
			Prompt:  r.prompt,
			Kind:    domain.AnswerSingleChoice,
			Options: Likert,
		})
	}
	questions = append(questions,
		Question{
			Key:     "satisfied_with_essay",
			Prompt:  "I was satisfied with the essay.",
			Kind:    domain.AnswerSingleChoice,
			Options: Likert,
		},
		Question{
			Key:     "creativity_level",
			Prompt:  "How creative do you feel you were in writing the essay?",
			Kind:    domain.AnswerSingleChoice,
			Options: CreativityOptions,
		},
		Question{
			Key:     "essay_in_my_voice",
			Prompt:  "I felt the essay was written in my voice.",
			Kind:    domain.AnswerSingleChoice,
			Options: Likert,
		},
		Question{
			Key:     "difficult_to_organize",
			Prompt:  "I found it difficult to organize my thoughts while writing.",
			Kind:    domain.AnswerSingleChoice,
			Options: Likert,
		},
		Question{
			Key:     "writing_struggle",
			Prompt:  "Writing this essay was a struggle for me.",
			Kind:    domain.AnswerSingleChoice,
			Options: Likert,
		},
		Question{
			Key: "essay_experience",
			Prompt: "Please describe your experience writing this essay. " +
				"Comment on: How well does the essay reflect your own views and writing style? " +
				"How much effort did you put into writing it? Did you learn anything during the process?",
			Kind: domain.AnswerFreeText,
		},
	)

	return PhaseSchema{
		Phase:     domain.PhasePostStudy,
		Title:     "Part III: Post-Study Questions",
		Questions: questions,
	}
}

// PostStudyUnassisted returns the post-study questionnaire for
// sessions without the writing assistant: only the essay reflections.
func PostStudyUnassisted() PhaseSchema {
	full := PostStudy()
	var questions []Question
	for _, q := range full.Questions {
		switch q.Key {
		case "satisfied_with_essay", "creativity_level", "essay_in_my_voice",
			"difficult_to_organize", "writing_struggle", "essay_experience":
			questions = append(questions, q)
		}
	}
	return PhaseSchema{
		Phase:     domain.PhasePostStudy,
		Title:     full.Title,
		Questions: questions,
	}
}
