// Package ignore evaluates .gitignore-style patterns against paths under a root directory.
package ignore

import "strings"

const (
	negationMarker       = "!"
	pathSegmentSeparator = "/"
)

// Pattern is a single parsed ignore rule.
type Pattern struct {
	// Raw is the line exactly as it was loaded.
	Raw string
	// Negated marks a rule that re-includes paths excluded by an earlier rule.
	Negated bool
	// DirectoryOnly marks a rule that never matches regular files.
	DirectoryOnly bool
	// Anchored records a leading slash. It does not change the match target.
	Anchored bool
	// Body is the glob left after the markers are stripped.
	Body string
}

// ParsePattern strips the negation, directory and anchor markers from raw.
// The second result is false when nothing remains to match against, in which
// case the rule must be skipped.
func ParsePattern(raw string) (Pattern, bool) {
	pattern := Pattern{Raw: raw}
	body := raw
	if body == "" {
		return pattern, false
	}

	if strings.HasPrefix(body, negationMarker) {
		pattern.Negated = true
		body = body[len(negationMarker):]
		if body == "" {
			return pattern, false
		}
	}

	if strings.HasSuffix(body, pathSegmentSeparator) {
		pattern.DirectoryOnly = true
		body = strings.TrimRight(body, pathSegmentSeparator)
		if body == "" {
			return pattern, false
		}
	}

	if strings.HasPrefix(body, pathSegmentSeparator) {
		pattern.Anchored = true
		body = body[len(pathSegmentSeparator):]
		if body == "" {
			return pattern, false
		}
	}

	pattern.Body = body
	return pattern, true
}

// matchesFullPath reports whether the body is compared against the whole
// root-relative path rather than the final path component.
func (pattern Pattern) matchesFullPath() bool {
	return strings.Contains(pattern.Body, pathSegmentSeparator)
}

// CompilePatterns parses raw patterns in order, dropping the ones that reduce to nothing.
func CompilePatterns(rawPatterns []string) []Pattern {
	compiled := make([]Pattern, 0, len(rawPatterns))
	for _, rawPattern := range rawPatterns {
		parsedPattern, usable := ParsePattern(rawPattern)
		if !usable {
			continue
		}
		compiled = append(compiled, parsedPattern)
	}
	return compiled
}
