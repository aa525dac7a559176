package session

import (
	"os"
	"strconv"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
)

// DefaultEssayPrompt is the writing prompt shown during the task phase.
const DefaultEssayPrompt = "Is technology making our lives better or worse?"

// Config selects the deployment variant of the study flow. The phase
// sequence, artifact policy, and questionnaires are configuration of
// one state machine, not different machines.
type Config struct {
	// IncludeConsent renders the consent phase before the
	// questionnaires. Disabled for deployments that collect consent
	// out of band.
	IncludeConsent bool

	// WaitBeforeTask inserts an interstitial phase between the
	// pre-study questionnaire and the task ("go write externally,
	// then confirm you are done").
	WaitBeforeTask bool

	// AssistantEnabled gives the participant the conversational
	// assistant during the task phase.
	AssistantEnabled bool

	// RequireArtifact controls the task-exit guard on the essay.
	RequireArtifact domain.ArtifactPolicy

	EssayPrompt     string
	ReferenceDocURL string

	PreStudy  schema.PhaseSchema
	PostStudy schema.PhaseSchema
}

// DefaultConfig returns the assisted-writing study variant.
func DefaultConfig() Config {
	return Config{
		IncludeConsent:   true,
		WaitBeforeTask:   false,
		AssistantEnabled: true,
		RequireArtifact:  domain.ArtifactBlocking,
		EssayPrompt:      DefaultEssayPrompt,
		PreStudy:         schema.PreStudy(),
		PostStudy:        schema.PostStudy(),
	}
}

// LoadConfig reads study configuration from environment variables,
// falling back to defaults for any unset values. Secrets and the
// reference document URL are read once at startup.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYFLOW_INCLUDE_CONSENT"); v != "" {
		cfg.IncludeConsent, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYFLOW_WAIT_BEFORE_TASK"); v != "" {
		cfg.WaitBeforeTask, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.AssistantEnabled = enabled
		}
	}
	if v := os.Getenv("STUDYFLOW_REQUIRE_ARTIFACT"); domain.ValidArtifactPolicies[v] {
		cfg.RequireArtifact = domain.ArtifactPolicy(v)
	}
	if v := os.Getenv("STUDYFLOW_ESSAY_PROMPT"); v != "" {
		cfg.EssayPrompt = v
	}
	if v := os.Getenv("STUDYFLOW_REFERENCE_DOC"); v != "" {
		cfg.ReferenceDocURL = v
	}

	if !cfg.AssistantEnabled {
		cfg.PostStudy = schema.PostStudyUnassisted()
	}
	return cfg
}

// phases returns the configured linear phase sequence.
func (c Config) phases() []domain.Phase {
	var seq []domain.Phase
	if c.IncludeConsent {
		seq = append(seq, domain.PhaseConsent)
	}
	seq = append(seq, domain.PhasePreStudy)
	if c.WaitBeforeTask {
		seq = append(seq, domain.PhaseWaitingForDone)
	}
	seq = append(seq, domain.PhaseTask, domain.PhasePostStudy, domain.PhaseClosed)
	return seq
}
