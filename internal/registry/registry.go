// Package registry holds the archetype, feature, and template registries.
// Registries are built once from declarative definitions (builtin data or
// YAML files), validated eagerly, and immutable afterwards. Declaration
// order is significant: it is the deterministic tie-break order for both
// classification and detection.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/featurecheck/internal/schema"
)

// VariantDef declares one framework-specific template variant. Variant order
// within a template is the explicit priority order: the first variant whose
// marker matches the source wins.
type VariantDef struct {
	Name   string `yaml:"name"`
	Marker string `yaml:"marker"` // regex detecting the framework signal
	Text   string `yaml:"text"`
}

// AnchorDef declares where a template should be inserted: immediately before
// the first match of Pattern. When Required is true and the pattern does not
// match, insertion is skipped; otherwise the engine falls back to its
// structural heuristics.
type AnchorDef struct {
	Pattern  string `yaml:"pattern"`
	Required bool   `yaml:"required"`
}

// TemplateDef declares the template text for one feature.
type TemplateDef struct {
	Generic  string       `yaml:"generic"`
	Variants []VariantDef `yaml:"variants"`
	Anchor   *AnchorDef   `yaml:"anchor"`
}

// FeatureDef is the declarative form of one feature descriptor plus its
// template.
type FeatureDef struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Importance  string      `yaml:"importance"`
	Pattern     string      `yaml:"pattern"`
	Template    TemplateDef `yaml:"template"`
}

// Definition is the declarative form of one archetype, as authored in the
// builtin table or a YAML registry file.
type Definition struct {
	Archetype string       `yaml:"archetype"`
	Keywords  []string     `yaml:"keywords"`
	Features  []FeatureDef `yaml:"features"`
}

// Variant is a compiled template variant.
type Variant struct {
	Name   string
	Text   string
	marker *regexp.Regexp
}

// Matches reports whether the variant's framework marker appears in source.
func (v Variant) Matches(source string) bool {
	return v.marker.MatchString(source)
}

// Template is a compiled template: opaque text blocks plus a resolved anchor.
// No execution semantics live inside the text; variant selection is entirely
// the insertion engine's job.
type Template struct {
	Generic        string
	Variants       []Variant // declared order = priority order
	Anchor         *regexp.Regexp
	AnchorRequired bool
}

// Feature is a compiled feature descriptor.
type Feature struct {
	schema.FeatureDescriptor
	re *regexp.Regexp
	// compileErr holds the pattern compilation failure when the registry was
	// built leniently; re is nil in that case.
	compileErr string
}

// Regexp returns the compiled detection pattern, or nil when the pattern
// failed to compile under lenient construction.
func (f Feature) Regexp() *regexp.Regexp { return f.re }

// CompileError returns the pattern compilation failure message, or "".
func (f Feature) CompileError() string { return f.compileErr }

// ArchetypeDef is one fully compiled archetype entry.
type ArchetypeDef struct {
	Name      schema.Archetype
	Keywords  []string
	Features  []Feature // declared order
	Templates map[string]Template
}

// Template returns the template registered for the named feature.
func (a *ArchetypeDef) Template(feature string) (Template, bool) {
	t, ok := a.Templates[feature]
	return t, ok
}

// Registry is the immutable set of compiled archetypes.
type Registry struct {
	defs   []*ArchetypeDef
	byName map[schema.Archetype]*ArchetypeDef
}

// Archetypes returns archetype names in declaration order.
func (r *Registry) Archetypes() []schema.Archetype {
	out := make([]schema.Archetype, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Name
	}
	return out
}

// Defs returns the compiled archetypes in declaration order.
func (r *Registry) Defs() []*ArchetypeDef { return r.defs }

// Lookup returns the compiled archetype entry for name.
func (r *Registry) Lookup(name schema.Archetype) (*ArchetypeDef, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ArchetypeError collects all validation failures for a single archetype.
// One broken archetype never blocks unrelated archetypes from loading.
type ArchetypeError struct {
	Archetype string
	Errs      []string
}

func (e ArchetypeError) Error() string {
	return fmt.Sprintf("registry: archetype %q: %s", e.Archetype, strings.Join(e.Errs, "; "))
}

// Options controls registry construction.
type Options struct {
	// Lenient keeps a feature whose detection pattern fails to compile
	// instead of rejecting its archetype. Such features are reported as
	// UNDETERMINED at detection time. The default (strict) treats a
	// non-compiling pattern as a configuration error.
	Lenient bool
}

// Warning is a non-fatal registry inconsistency.
type Warning struct {
	Archetype string
	Feature   string
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s: %s", w.Archetype, w.Feature, w.Message)
}

// New compiles definitions into a Registry. Definitions are processed in
// order; a later definition for an already-seen archetype replaces the
// earlier one while keeping its original position, so tie-break order stays
// stable under overrides. Archetypes that fail validation are reported in
// errs and omitted from the registry.
func New(defs []Definition, opts Options) (reg *Registry, warnings []Warning, errs []ArchetypeError) {
	reg = &Registry{byName: make(map[schema.Archetype]*ArchetypeDef)}
	for _, def := range defs {
		compiled, ws, aerr := compileDefinition(def, opts)
		warnings = append(warnings, ws...)
		if aerr != nil {
			errs = append(errs, *aerr)
			continue
		}
		if prev, ok := reg.byName[compiled.Name]; ok {
			// Override in place: keep the original tie-break position.
			for i, d := range reg.defs {
				if d == prev {
					reg.defs[i] = compiled
					break
				}
			}
		} else {
			reg.defs = append(reg.defs, compiled)
		}
		reg.byName[compiled.Name] = compiled
	}
	return reg, warnings, errs
}

// compileDefinition validates and compiles a single archetype definition.
// All failures are collected so a registry author sees every problem at once.
func compileDefinition(def Definition, opts Options) (*ArchetypeDef, []Warning, *ArchetypeError) {
	var errs []string
	var warnings []Warning

	name := strings.TrimSpace(def.Archetype)
	if name == "" {
		errs = append(errs, "archetype name is required")
	}
	if name == string(schema.ArchetypeUnknown) {
		errs = append(errs, fmt.Sprintf("archetype name %q is reserved for the fallback", name))
	}

	out := &ArchetypeDef{
		Name:      schema.Archetype(name),
		Keywords:  normalizeKeywords(def.Keywords),
		Templates: make(map[string]Template, len(def.Features)),
	}

	seen := make(map[string]bool, len(def.Features))
	for _, fd := range def.Features {
		if fd.Name == "" {
			errs = append(errs, "feature with empty name")
			continue
		}
		if seen[fd.Name] {
			errs = append(errs, fmt.Sprintf("duplicate feature %q", fd.Name))
			continue
		}
		seen[fd.Name] = true

		imp, err := ParseImportance(fd.Importance)
		if err != nil {
			errs = append(errs, fmt.Sprintf("feature %q: %v", fd.Name, err))
		}

		feat := Feature{FeatureDescriptor: schema.FeatureDescriptor{
			Name:        fd.Name,
			Description: fd.Description,
			Importance:  imp,
			Pattern:     fd.Pattern,
		}}
		re, err := compilePattern(fd.Pattern)
		if err != nil {
			if opts.Lenient {
				feat.compileErr = err.Error()
			} else {
				errs = append(errs, fmt.Sprintf("feature %q: pattern: %v", fd.Name, err))
			}
		} else {
			feat.re = re
		}
		out.Features = append(out.Features, feat)

		tmpl, terrs := compileTemplate(fd.Template)
		if len(terrs) > 0 {
			for _, te := range terrs {
				errs = append(errs, fmt.Sprintf("feature %q: template: %s", fd.Name, te))
			}
			continue
		}
		out.Templates[fd.Name] = tmpl

		// A template that its own detection pattern cannot see would be
		// re-inserted on every run; warn the registry author.
		if re != nil && !templateDetectable(re, tmpl) {
			warnings = append(warnings, Warning{
				Archetype: name,
				Feature:   fd.Name,
				Message:   "template text does not match the detection pattern; enhancement would not be idempotent",
			})
		}
	}

	if len(errs) > 0 {
		return nil, warnings, &ArchetypeError{Archetype: def.Archetype, Errs: errs}
	}
	return out, warnings, nil
}

// compileTemplate compiles variant markers and the anchor of one template.
func compileTemplate(td TemplateDef) (Template, []string) {
	var errs []string
	if strings.TrimSpace(td.Generic) == "" {
		errs = append(errs, "generic text is required")
	}
	tmpl := Template{Generic: td.Generic}
	for _, vd := range td.Variants {
		if vd.Name == "" {
			errs = append(errs, "variant with empty name")
			continue
		}
		marker, err := compilePattern(vd.Marker)
		if err != nil {
			errs = append(errs, fmt.Sprintf("variant %q: marker: %v", vd.Name, err))
			continue
		}
		if strings.TrimSpace(vd.Text) == "" {
			errs = append(errs, fmt.Sprintf("variant %q: text is required", vd.Name))
			continue
		}
		tmpl.Variants = append(tmpl.Variants, Variant{Name: vd.Name, Text: vd.Text, marker: marker})
	}
	if td.Anchor != nil {
		anchor, err := compilePattern(td.Anchor.Pattern)
		if err != nil {
			errs = append(errs, fmt.Sprintf("anchor: %v", err))
		} else {
			tmpl.Anchor = anchor
			tmpl.AnchorRequired = td.Anchor.Required
		}
	}
	if len(errs) > 0 {
		return Template{}, errs
	}
	return tmpl, nil
}

// templateDetectable reports whether every text block of the template matches
// the feature's detection pattern. This property is what makes enhancement
// idempotent: whichever block gets inserted must be detected as present on a
// re-run.
func templateDetectable(re *regexp.Regexp, tmpl Template) bool {
	if !re.MatchString(tmpl.Generic) {
		return false
	}
	for _, v := range tmpl.Variants {
		if !re.MatchString(v.Text) {
			return false
		}
	}
	return true
}

// compilePattern compiles a registry pattern with case-insensitive,
// multi-line matching. Target constructs can appear on any line of the
// source, so (?m) is always applied.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	return regexp.Compile("(?im)" + pattern)
}

// ParseImportance converts a string to an Importance constant.
func ParseImportance(s string) (schema.Importance, error) {
	switch schema.Importance(strings.ToLower(strings.TrimSpace(s))) {
	case schema.ImportanceHigh:
		return schema.ImportanceHigh, nil
	case schema.ImportanceMedium:
		return schema.ImportanceMedium, nil
	case schema.ImportanceLow:
		return schema.ImportanceLow, nil
	}
	return "", fmt.Errorf("unknown importance %q", s)
}

// normalizeKeywords lowercases and de-duplicates keywords, preserving order.
func normalizeKeywords(kws []string) []string {
	seen := make(map[string]bool, len(kws))
	var out []string
	for _, kw := range kws {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
