package ignore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePattern(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Pattern
		usable   bool
	}{
		{name: "empty", raw: "", expected: Pattern{Raw: ""}, usable: false},
		{name: "plain", raw: "*.log", expected: Pattern{Raw: "*.log", Body: "*.log"}, usable: true},
		{name: "negated", raw: "!keep.log", expected: Pattern{Raw: "!keep.log", Negated: true, Body: "keep.log"}, usable: true},
		{name: "directory only", raw: "build/", expected: Pattern{Raw: "build/", DirectoryOnly: true, Body: "build"}, usable: true},
		{name: "repeated trailing slashes", raw: "build//", expected: Pattern{Raw: "build//", DirectoryOnly: true, Body: "build"}, usable: true},
		{name: "anchored", raw: "/vendor", expected: Pattern{Raw: "/vendor", Anchored: true, Body: "vendor"}, usable: true},
		{
			name:     "all markers",
			raw:      "!/out/",
			expected: Pattern{Raw: "!/out/", Negated: true, DirectoryOnly: true, Anchored: true, Body: "out"},
			usable:   true,
		},
		{name: "double leading slash keeps one", raw: "//tmp", expected: Pattern{Raw: "//tmp", Anchored: true, Body: "/tmp"}, usable: true},
		{name: "bare negation", raw: "!", expected: Pattern{Raw: "!", Negated: true}, usable: false},
		{name: "bare slash", raw: "/", expected: Pattern{Raw: "/", DirectoryOnly: true}, usable: false},
		{name: "negated slash", raw: "!/", expected: Pattern{Raw: "!/", Negated: true, DirectoryOnly: true}, usable: false},
		{name: "negated anchor only", raw: "!//", expected: Pattern{Raw: "!//", Negated: true, DirectoryOnly: true}, usable: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed, usable := ParsePattern(testCase.raw)
			if usable != testCase.usable {
				t.Fatalf("usable: expected %v, got %v", testCase.usable, usable)
			}
			if diff := cmp.Diff(testCase.expected, parsed); diff != "" {
				t.Fatalf("unexpected pattern for %q (-want +got):\n%s", testCase.raw, diff)
			}
		})
	}
}

func TestCompilePatternsKeepsOrderAndDropsEmpty(t *testing.T) {
	compiled := CompilePatterns([]string{"a*", "!", "!ab", "/", "ab*"})
	bodies := make([]string, 0, len(compiled))
	for _, pattern := range compiled {
		bodies = append(bodies, pattern.Body)
	}
	if diff := cmp.Diff([]string{"a*", "ab", "ab*"}, bodies); diff != "" {
		t.Fatalf("unexpected compiled bodies (-want +got):\n%s", diff)
	}
}
