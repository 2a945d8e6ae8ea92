// Package schema defines all canonical data types for the featurecheck output format.
package schema

// Archetype names a category of application (game, GUI app, CLI tool, ...).
// The set of archetypes is open-ended: new ones are added through registry
// data, never through code changes in the matching or insertion logic.
type Archetype string

// ArchetypeUnknown is the designated fallback when no archetype keyword
// matches the input. Downstream stages treat it as "no features apply".
const ArchetypeUnknown Archetype = "unknown"

// Importance is the ordinal weight of a feature descriptor.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Ordinal returns the sort rank of an importance level. High sorts first.
// Unrecognized values sort last.
func (i Importance) Ordinal() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	case ImportanceLow:
		return 2
	default:
		return 3
	}
}

// DetectStatus is the outcome of evaluating one feature's detection pattern.
type DetectStatus string

const (
	DetectMissing      DetectStatus = "MISSING"
	DetectPresent      DetectStatus = "PRESENT"
	DetectUndetermined DetectStatus = "UNDETERMINED"
)

// ApplyStatus is the outcome of one insertion attempt.
type ApplyStatus string

const (
	ApplyApplied ApplyStatus = "APPLIED"
	ApplySkipped ApplyStatus = "SKIPPED"
)

// FeatureDescriptor describes one capability an archetype is conventionally
// expected to have. Descriptors are immutable after registry load.
type FeatureDescriptor struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	// Pattern is the regular expression whose match anywhere in the source
	// signals the feature is already implemented.
	Pattern string `json:"pattern"`
}

// Finding records the detection outcome for a single feature.
type Finding struct {
	Feature FeatureDescriptor `json:"feature"`
	Status  DetectStatus      `json:"status"`
	// Reason explains an UNDETERMINED outcome; empty otherwise.
	Reason string `json:"reason,omitempty"`
}

// Application records one insertion attempt for a missing feature.
type Application struct {
	Name   string      `json:"name"`
	Status ApplyStatus `json:"status"`
	// Reason explains a SKIPPED outcome; empty for APPLIED.
	Reason string `json:"reason,omitempty"`
	// Line is the 1-based line number at which the template was inserted.
	// Zero when the feature was skipped.
	Line int `json:"line,omitempty"`
	// Variant names the template variant that was selected, or "generic".
	Variant string `json:"variant,omitempty"`
}

// Summary holds the computed completeness score and per-importance counts
// of missing features.
type Summary struct {
	Score         int `json:"score"`
	HighMissing   int `json:"high_missing"`
	MediumMissing int `json:"medium_missing"`
	LowMissing    int `json:"low_missing"`
}

// AnalysisResult is the ephemeral product of one analysis request. Results
// are created per call and never cached or shared across requests.
type AnalysisResult struct {
	Archetype Archetype `json:"archetype"`
	// Findings lists every evaluated feature with its detection status,
	// ordered by importance then registry declaration order.
	Findings []Finding `json:"findings"`
	// Missing is the ordered subset of Findings with status MISSING.
	Missing        []FeatureDescriptor `json:"missing"`
	EnhancedSource string              `json:"enhanced_source"`
	Applied        []Application       `json:"applied"`
	Summary        Summary             `json:"summary"`
}

// Input records the parameters used for one CLI run.
type Input struct {
	File        string    `json:"file"`
	RegistryDir string    `json:"registry_dir,omitempty"`
	Archetype   Archetype `json:"archetype,omitempty"`
	// EssentialOnly restricts insertion to high-importance features.
	EssentialOnly bool `json:"essential_only,omitempty"`
}

// Report is the top-level output document.
type Report struct {
	Tool    string         `json:"tool"`
	Version string         `json:"version"`
	Input   Input          `json:"input"`
	Result  AnalysisResult `json:"result"`
}
