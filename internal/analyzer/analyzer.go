// Package analyzer orchestrates the analysis pipeline: classify the
// snippet, detect missing default features, insert templates, and assemble
// the result. The pipeline is synchronous and pure per request; the only
// shared state is the immutable registry snapshot taken at the start.
package analyzer

import (
	"github.com/dshills/featurecheck/internal/classify"
	"github.com/dshills/featurecheck/internal/detect"
	"github.com/dshills/featurecheck/internal/enhance"
	"github.com/dshills/featurecheck/internal/registry"
	"github.com/dshills/featurecheck/internal/schema"
)

// Options configures one analysis request.
type Options struct {
	// EssentialOnly restricts template insertion to high-importance
	// features. Detection still reports everything.
	EssentialOnly bool
}

// Analyzer runs the pipeline against a registry store. Concurrent Analyze
// calls are safe: each takes its own registry snapshot and shares nothing
// else.
type Analyzer struct {
	store *registry.Store
}

// New creates an Analyzer backed by store.
func New(store *registry.Store) *Analyzer {
	return &Analyzer{store: store}
}

// Analyze classifies source and runs detection and enhancement for the
// resulting archetype. The fallback archetype short-circuits to "source
// unchanged, nothing applied".
func (a *Analyzer) Analyze(source string, opts Options) schema.AnalysisResult {
	reg := a.store.Current()
	return run(reg, classify.Classify(reg, source), source, opts)
}

// AnalyzeAs runs the pipeline with a caller-chosen archetype, skipping
// classification.
func (a *Analyzer) AnalyzeAs(source string, archetype schema.Archetype, opts Options) schema.AnalysisResult {
	return run(a.store.Current(), archetype, source, opts)
}

func run(reg *registry.Registry, archetype schema.Archetype, source string, opts Options) schema.AnalysisResult {
	findings := detect.Evaluate(reg, archetype, source)

	missing := make([]schema.FeatureDescriptor, 0, len(findings))
	for _, f := range findings {
		if f.Status == schema.DetectMissing {
			missing = append(missing, f.Feature)
		}
	}

	enhanced, applied := enhance.Enhance(reg, archetype, source, missing, enhance.Options{
		EssentialOnly: opts.EssentialOnly,
	})

	return schema.AnalysisResult{
		Archetype:      archetype,
		Findings:       findings,
		Missing:        missing,
		EnhancedSource: enhanced,
		Applied:        applied,
		Summary:        Summarize(missing),
	}
}

// Summarize counts missing features per importance tier and computes the
// completeness score: start at 100, subtract 20 per missing high, 7 per
// missing medium, 2 per missing low; clamp to [0, 100].
func Summarize(missing []schema.FeatureDescriptor) schema.Summary {
	var s schema.Summary
	for _, f := range missing {
		switch f.Importance {
		case schema.ImportanceHigh:
			s.HighMissing++
		case schema.ImportanceMedium:
			s.MediumMissing++
		case schema.ImportanceLow:
			s.LowMissing++
		}
	}
	s.Score = computeScore(s.HighMissing, s.MediumMissing, s.LowMissing)
	return s
}

func computeScore(high, medium, low int) int {
	score := 100 - (high * 20) - (medium * 7) - (low * 2)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
