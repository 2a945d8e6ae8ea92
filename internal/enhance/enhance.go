// Package enhance implements the template insertion engine. It places
// template text for missing features into a source snippet using structural
// heuristics, never a grammar. Every insertion attempt is recorded as
// applied or skipped; a single failed feature never aborts the rest.
package enhance

import (
	"strings"

	"github.com/dshills/featurecheck/internal/registry"
	"github.com/dshills/featurecheck/internal/schema"
	"github.com/dshills/featurecheck/internal/sourcescan"
)

// Skip reasons reported in Application.Reason.
const (
	ReasonNoTemplate       = "no template"
	ReasonNoInsertionPoint = "no insertion point"
	ReasonNotRegistered    = "archetype not registered"
	ReasonBelowThreshold   = "below importance threshold"
)

// Options configures an Enhance call.
type Options struct {
	// EssentialOnly restricts insertion to high-importance features; the
	// rest are reported as skipped.
	EssentialOnly bool
}

// Enhance inserts templates for the missing features of archetype into
// source, in the order given (the detection order). It returns the enhanced
// text and one Application per missing feature. The input string is never
// modified; the caller owns both copies independently.
//
// Template variants are resolved against the original source, so framework
// signals introduced by earlier insertions never influence later ones.
func Enhance(reg *registry.Registry, archetype schema.Archetype, source string, missing []schema.FeatureDescriptor, opts Options) (string, []schema.Application) {
	applied := make([]schema.Application, 0, len(missing))

	def, ok := reg.Lookup(archetype)
	if !ok {
		for _, f := range missing {
			applied = append(applied, skipped(f.Name, ReasonNotRegistered))
		}
		return source, applied
	}

	enhanced := source
	for _, f := range missing {
		if opts.EssentialOnly && f.Importance != schema.ImportanceHigh {
			applied = append(applied, skipped(f.Name, ReasonBelowThreshold))
			continue
		}

		tmpl, ok := def.Template(f.Name)
		if !ok {
			applied = append(applied, skipped(f.Name, ReasonNoTemplate))
			continue
		}

		variant, text := resolveVariant(tmpl, source)

		next, line, ok := insert(enhanced, tmpl, text)
		if !ok {
			applied = append(applied, skipped(f.Name, ReasonNoInsertionPoint))
			continue
		}
		enhanced = next
		applied = append(applied, schema.Application{
			Name:    f.Name,
			Status:  schema.ApplyApplied,
			Line:    line,
			Variant: variant,
		})
	}
	return enhanced, applied
}

func skipped(name, reason string) schema.Application {
	return schema.Application{Name: name, Status: schema.ApplySkipped, Reason: reason}
}

// resolveVariant picks the template text: the first declared variant whose
// framework marker matches the source wins, otherwise the generic block.
// Declared order is the explicit priority order.
func resolveVariant(tmpl registry.Template, source string) (name, text string) {
	for _, v := range tmpl.Variants {
		if v.Matches(source) {
			return v.Name, v.Text
		}
	}
	return "generic", tmpl.Generic
}

// insert places block into source and returns the new text plus the 1-based
// line number of the first inserted line. Placement precedence:
//
//  1. the sourcescan.InsertMarker comment, when present;
//  2. the template's anchor pattern (insert before its first match) — a
//     required anchor that does not match is a reported failure;
//  3. the final run of top-level executable statements, so definitions
//     land before their first use;
//  4. append to the end.
func insert(source string, tmpl registry.Template, block string) (string, int, bool) {
	lines := sourcescan.Lines(source)

	at := sourcescan.MarkerIndex(lines)
	if at == -1 && tmpl.Anchor != nil {
		at = sourcescan.MatchLine(tmpl.Anchor, source)
		if at == -1 && tmpl.AnchorRequired {
			return source, 0, false
		}
	}
	if at == -1 {
		at = sourcescan.EntryPointIndex(lines)
	}
	if at == -1 {
		// Nothing to insert before: append with a separating blank line.
		trimmed := strings.TrimRight(source, "\n")
		sep := "\n\n"
		if trimmed == "" {
			trimmed, sep = "", ""
		}
		line := strings.Count(trimmed, "\n") + 1
		if trimmed != "" {
			line += 2
		}
		return trimmed + sep + blockText(block) + "\n", line, true
	}

	blockLines := append(sourcescan.Lines(blockText(block)), "")
	out := make([]string, 0, len(lines)+len(blockLines))
	out = append(out, lines[:at]...)
	out = append(out, blockLines...)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n"), at + 1, true
}

// blockText normalizes a template block: surrounding blank lines are the
// inserter's concern, not the template author's.
func blockText(block string) string {
	return strings.Trim(block, "\n")
}
