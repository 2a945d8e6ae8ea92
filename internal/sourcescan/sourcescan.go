// Package sourcescan provides structural heuristics over raw source text.
// It never parses a grammar: insertion points and framework signals are
// located with line classification and regular expressions, the same way
// the detection patterns work. Shared by the insertion engine.
package sourcescan

import (
	"regexp"
	"strings"
)

// InsertMarker is the magic comment users can place in a snippet to pin the
// insertion point. Templates are inserted immediately before the marker
// line; the marker itself is preserved for later runs.
const InsertMarker = "featurecheck:insert"

// Lines splits source into lines without the trailing newlines. Join with
// "\n" to reassemble; a trailing newline in the input yields a final empty
// element, so reassembly is lossless.
func Lines(source string) []string {
	return strings.Split(source, "\n")
}

// MarkerIndex returns the index of the first line containing InsertMarker,
// or -1.
func MarkerIndex(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, InsertMarker) {
			return i
		}
	}
	return -1
}

// MatchLine returns the index of the line containing the start of the first
// match of re in source, or -1 when there is no match.
func MatchLine(re *regexp.Regexp, source string) int {
	loc := re.FindStringIndex(source)
	if loc == nil {
		return -1
	}
	return strings.Count(source[:loc[0]], "\n")
}

// definitionRe matches top-level lines that introduce definitions rather
// than execute anything: imports, function/class definitions, decorators.
// Covers the Python-style snippets this tool targets plus common
// brace-language forms.
var definitionRe = regexp.MustCompile(`^(import\s|from\s|def\s|class\s|@|async\s+def\s|func\s|type\s|var\s|const\s|package\s)`)

// isTopLevelExec reports whether line is a top-level executable statement:
// non-empty, unindented, not a comment, not a definition.
func isTopLevelExec(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		return false
	}
	return !definitionRe.MatchString(line)
}

// EntryPointIndex returns the index of the first line of the final run of
// top-level executable statements — the place where helper definitions can
// be inserted so they precede their first use. A run is broken by a later
// top-level definition, not by blank lines, comments, or indented lines.
// Returns -1 when the source has no top-level executable statement.
func EntryPointIndex(lines []string) int {
	blockStart := -1
	inBlock := false
	for i, line := range lines {
		switch {
		case isTopLevelExec(line):
			if !inBlock {
				blockStart = i
				inBlock = true
			}
		case line != "" && (line[0] != ' ' && line[0] != '\t') && definitionRe.MatchString(line):
			// A new top-level definition ends the current run; a later
			// executable line starts a fresh one.
			inBlock = false
		}
	}
	return blockStart
}
