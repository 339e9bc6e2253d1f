// Package extractor pulls variable references out of Helm template text.
// It is purely textual: no template parsing or evaluation takes place, so it
// works on charts that would not even render.
package extractor

import (
	"regexp"
	"strings"
)

// expressionPattern matches one {{ ... }} template expression, including the
// trim-marker variants {{- ... -}}.
var expressionPattern = regexp.MustCompile(`\{\{-?\s*(.*?)\s*-?\}\}`)

// DefaultPrefixes is the recognized root-namespace convention for Helm
// charts. Expressions not starting with one of these are not treated as
// variable references.
var DefaultPrefixes = []string{".Values"}

// Extractor recognizes variable references by a configurable set of
// root-namespace prefixes.
type Extractor struct {
	prefixes []string
}

// New returns an Extractor using the given prefixes, falling back to
// DefaultPrefixes when none are supplied.
func New(prefixes ...string) *Extractor {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(strings.TrimSuffix(p, "."))
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &Extractor{prefixes: cleaned}
}

// Extract returns every variable path referenced in text, in order of
// appearance. Duplicates are kept; deduplication happens when per-file
// results are assembled so that occurrence counts survive.
//
// For each {{ ... }} expression, anything after the first pipe is a filter
// directive and is discarded, e.g. {{ .Values.AppName | quote }} yields
// "AppName". Expressions not starting with a recognized prefix (control-flow
// constructs, template built-ins) are skipped entirely.
func (e *Extractor) Extract(text string) []string {
	var paths []string
	for _, match := range expressionPattern.FindAllStringSubmatch(text, -1) {
		expr := strings.TrimSpace(match[1])
		if cut := strings.IndexByte(expr, '|'); cut >= 0 {
			expr = strings.TrimSpace(expr[:cut])
		}
		if path, ok := e.referencePath(expr); ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// referencePath strips the recognized prefix from expr and validates the
// remainder as a dotted path. It rejects expressions that carry extra tokens
// (e.g. "if .Values.Enabled") or that collapse to zero segments.
func (e *Extractor) referencePath(expr string) (string, bool) {
	for _, prefix := range e.prefixes {
		if expr == prefix {
			// Bare prefix with no segments, e.g. {{ .Values }}.
			return "", false
		}
		if !strings.HasPrefix(expr, prefix+".") {
			continue
		}
		path := expr[len(prefix)+1:]
		if path == "" || strings.ContainsAny(path, " \t") {
			return "", false
		}
		for _, segment := range strings.Split(path, ".") {
			if segment == "" {
				return "", false
			}
		}
		return path, true
	}
	return "", false
}
