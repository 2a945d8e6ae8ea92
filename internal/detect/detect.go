// Package detect evaluates which of an archetype's default features are
// already present in a source snippet. A feature is present iff its
// detection pattern matches the text at least once; patterns are compiled
// once at registry load with case-insensitive, multi-line semantics.
package detect

import (
	"fmt"
	"sort"

	"github.com/dshills/featurecheck/internal/registry"
	"github.com/dshills/featurecheck/internal/schema"
)

// Evaluate returns one Finding per registered feature of archetype, ordered
// by importance (high first) with ties broken by registry declaration
// order. A feature whose pattern never compiled (lenient registry) is
// UNDETERMINED: it belongs to neither the missing nor the present set, and
// never auto-inserts code on spurious evidence. An unregistered archetype —
// including the fallback — yields nil: no features apply.
func Evaluate(reg *registry.Registry, archetype schema.Archetype, source string) []schema.Finding {
	def, ok := reg.Lookup(archetype)
	if !ok {
		return nil
	}

	findings := make([]schema.Finding, 0, len(def.Features))
	for _, f := range def.Features {
		finding := schema.Finding{Feature: f.FeatureDescriptor}
		switch {
		case f.Regexp() == nil:
			finding.Status = schema.DetectUndetermined
			finding.Reason = fmt.Sprintf("pattern did not compile: %s", f.CompileError())
		case f.Regexp().MatchString(source):
			finding.Status = schema.DetectPresent
		default:
			finding.Status = schema.DetectMissing
		}
		findings = append(findings, finding)
	}

	// Stable: equal importance keeps declaration order.
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Feature.Importance.Ordinal() < findings[j].Feature.Importance.Ordinal()
	})
	return findings
}

// Missing returns the descriptors of the missing features of archetype, in
// the Evaluate ordering. This ordering drives the insertion sequence.
func Missing(reg *registry.Registry, archetype schema.Archetype, source string) []schema.FeatureDescriptor {
	var out []schema.FeatureDescriptor
	for _, f := range Evaluate(reg, archetype, source) {
		if f.Status == schema.DetectMissing {
			out = append(out, f.Feature)
		}
	}
	return out
}
