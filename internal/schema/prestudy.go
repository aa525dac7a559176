package schema

import "github.com/mabdulhai/studyflow/internal/domain"

// Likert is the five-point agreement scale used by both questionnaires.
var Likert = []string{
	"Strongly disagree", "Disagree", "Neutral", "Agree", "Strongly agree",
}

// OtherOption is the sentinel choice that makes the paired
// "please specify" question required.
const OtherOption = "Other (please specify)"

// EssayUseOptions are the answer choices for what AI tools should be
// used for when writing essays.
var EssayUseOptions = []string{
	"Not at all",
	"Check grammar, spelling, or clarity",
	"Offer suggestions on how to improve my writing",
	"Help brainstorm or outline ideas",
	"Rewrite my essay from scratch",
	"Write the entire essay",
	OtherOption,
}

// PurposeOptions are the answer choices for what participants use LLMs for.
var PurposeOptions = []string{
	"I don't use LLMs",
	"General conversation",
	"Search queries / seeking knowledge (e.g., health info)",
	"Learning or understanding new concepts",
	"Advice",
	"Writing or editing text (e.g., essays, emails, reports)",
	"Work or productivity tasks",
	OtherOption,
}

// FrequencyOptions are the answer choices for how often participants
// use LLMs to help them write.
var FrequencyOptions = []string{
	"Daily", "Weekly", "Monthly", "Checked it out a few times", "Never",
}

// PreStudy returns the pre-study questionnaire: attitudes toward AI
// and writing, writing habits, and prior LLM use.
func PreStudy() PhaseSchema {
	return PhaseSchema{
		Phase: domain.PhasePreStudy,
		Title: "Part I: Pre-Study Questions",
		Questions: []Question{
			{
				Key:     "ai_improve_writing",
				Prompt:  "I believe AI tools can improve my writing quality.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "ai_understand_style",
				Prompt:  "I do not expect AI systems to understand my writing style.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "ai_trust_accuracy",
				Prompt:  "I trust AI systems to provide accurate information.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "ai_academic_acceptability",
				Prompt:  "I do not believe using AI for writing is acceptable in academic contexts.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "ai_use_case",
				Prompt:  "For essay writing, I think AI tools should be used for:",
				Kind:    domain.AnswerMultiChoice,
				Options: EssayUseOptions,
			},
			{
				Key:           "other_use_case",
				Prompt:        "Please specify:",
				Kind:          domain.AnswerFreeText,
				ConditionalOn: &Condition{SiblingKey: "ai_use_case", Sentinel: OtherOption},
			},
			{
				Key:     "struggle_structure",
				Prompt:  "I often struggle with structuring my ideas clearly.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "confident_writer",
				Prompt:  "I feel confident in my ability to write and edit essays on my own.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "writing_time",
				Prompt:  "I find essay writing time-consuming.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "writing_enjoyable",
				Prompt:  "I usually find essay writing enjoyable.",
				Kind:    domain.AnswerSingleChoice,
				Options: Likert,
			},
			{
				Key:     "llm_use_frequency",
				Prompt:  "I use LLMs to help me write:",
				Kind:    domain.AnswerSingleChoice,
				Options: FrequencyOptions,
			},
			{
				Key:      "llm_use_purpose",
				Prompt:   "What do you use LLMs for?",
				Kind:     domain.AnswerMultiChoice,
				Options:  PurposeOptions,
				Optional: true,
			},
			{
				Key:           "llm_use_purpose_other",
				Prompt:        "Please specify:",
				Kind:          domain.AnswerFreeText,
				ConditionalOn: &Condition{SiblingKey: "llm_use_purpose", Sentinel: OtherOption},
			},
			{
				Key: "llm_last_experience",
				Prompt: "Please describe the last time you used a large language model (LLM) such as ChatGPT, Claude, Gemini, or another AI assistant. " +
					"What did you use it for, and in what context (e.g., work, study, personal use)? " +
					"How helpful did you find the experience, and why?",
				Kind: domain.AnswerFreeText,
			},
		},
	}
}
