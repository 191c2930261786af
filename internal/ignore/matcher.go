package ignore

import (
	"os"
	"path"
	"path/filepath"
)

const currentDirectoryPath = "."

// Matcher classifies paths under a fixed root against an ordered pattern list.
// Later matching patterns override earlier ones.
type Matcher struct {
	rootDirectoryPath string
	patterns          []Pattern
}

// NewMatcher compiles rawPatterns once for repeated evaluation under rootDirectoryPath.
func NewMatcher(rootDirectoryPath string, rawPatterns []string) *Matcher {
	return &Matcher{
		rootDirectoryPath: rootDirectoryPath,
		patterns:          CompilePatterns(rawPatterns),
	}
}

// Patterns returns the compiled rules in evaluation order.
func (matcher *Matcher) Patterns() []Pattern {
	return append([]Pattern(nil), matcher.patterns...)
}

// Ignored reports whether candidatePath is excluded. The root itself and paths
// that cannot be expressed relative to the root are never excluded.
func (matcher *Matcher) Ignored(candidatePath string) bool {
	relativePath, relativeAvailable := relativeSlashPath(candidatePath, matcher.rootDirectoryPath)
	if !relativeAvailable || relativePath == currentDirectoryPath {
		return false
	}
	baseName := path.Base(relativePath)

	var candidateIsDirectory, directoryChecked bool
	ignored := false
	for _, pattern := range matcher.patterns {
		matchTarget := baseName
		if pattern.matchesFullPath() {
			matchTarget = relativePath
		}
		if !MatchGlob(pattern.Body, matchTarget) {
			continue
		}
		if pattern.DirectoryOnly {
			if !directoryChecked {
				candidateIsDirectory = isDirectory(candidatePath)
				directoryChecked = true
			}
			if !candidateIsDirectory {
				continue
			}
		}
		ignored = !pattern.Negated
	}
	return ignored
}

// IsIgnored evaluates rawPatterns against candidatePath without keeping a compiled matcher.
func IsIgnored(candidatePath string, rawPatterns []string, rootDirectoryPath string) bool {
	return NewMatcher(rootDirectoryPath, rawPatterns).Ignored(candidatePath)
}

// relativeSlashPath expresses candidatePath relative to rootDirectoryPath using
// forward slashes on every platform.
func relativeSlashPath(candidatePath string, rootDirectoryPath string) (string, bool) {
	absoluteCandidatePath, candidateError := filepath.Abs(candidatePath)
	if candidateError != nil {
		return "", false
	}
	absoluteRootPath, rootError := filepath.Abs(rootDirectoryPath)
	if rootError != nil {
		return "", false
	}
	relativePath, relativeError := filepath.Rel(absoluteRootPath, absoluteCandidatePath)
	if relativeError != nil {
		return "", false
	}
	return filepath.ToSlash(relativePath), true
}

// isDirectory follows symbolic links, so a link to a directory counts as one.
func isDirectory(candidatePath string) bool {
	fileInformation, statError := os.Stat(candidatePath)
	return statError == nil && fileInformation.IsDir()
}
