package domain

// Phase is a mutually exclusive stage of a participant session.
type Phase string

const (
	PhaseConsent        Phase = "consent"
	PhasePreStudy       Phase = "prestudy"
	PhaseWaitingForDone Phase = "waiting_for_done"
	PhaseTask           Phase = "task"
	PhasePostStudy      Phase = "poststudy"
	PhaseClosed         Phase = "closed"
)

// ValidPhases is the canonical set of accepted phase strings.
var ValidPhases = map[string]bool{
	"consent": true, "prestudy": true, "waiting_for_done": true,
	"task": true, "poststudy": true, "closed": true,
}

// ArtifactPolicy controls whether leaving the task phase without a
// written artifact is refused, warned about, or ignored.
type ArtifactPolicy string

const (
	ArtifactBlocking ArtifactPolicy = "blocking"
	ArtifactAdvisory ArtifactPolicy = "advisory"
	ArtifactNone     ArtifactPolicy = "none"
)

// ValidArtifactPolicies is the canonical set of accepted policy strings.
var ValidArtifactPolicies = map[string]bool{
	"blocking": true, "advisory": true, "none": true,
}

// Role tags a conversation turn with its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
