// Package classify provides the keyword-overlap archetype classifier.
// It is a deterministic stand-in for a learned model: the score of an
// archetype is the count of its keywords found in the source text.
package classify

import (
	"strings"

	"github.com/dshills/featurecheck/internal/registry"
	"github.com/dshills/featurecheck/internal/schema"
)

// Score is one archetype's keyword tally.
type Score struct {
	Archetype schema.Archetype
	Hits      int
}

// Classify returns the archetype whose keywords match source the most.
// Matching is case-insensitive substring search; keywords may overlap
// across archetypes. Ties are broken by registry declaration order (the
// first declared archetype wins), so the result is reproducible. When every
// archetype scores zero, the fallback schema.ArchetypeUnknown is returned.
func Classify(reg *registry.Registry, source string) schema.Archetype {
	best := schema.ArchetypeUnknown
	bestHits := 0
	for _, s := range Scores(reg, source) {
		// Strictly greater: earlier archetypes keep ties.
		if s.Hits > bestHits {
			best = s.Archetype
			bestHits = s.Hits
		}
	}
	return best
}

// Scores returns the per-archetype keyword tallies in registry declaration
// order. Useful for verbose CLI output and for testing the tie-break.
func Scores(reg *registry.Registry, source string) []Score {
	lower := strings.ToLower(source)
	defs := reg.Defs()
	out := make([]Score, len(defs))
	for i, def := range defs {
		hits := 0
		for _, kw := range def.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		out[i] = Score{Archetype: def.Name, Hits: hits}
	}
	return out
}
