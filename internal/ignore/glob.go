package ignore

const (
	anyRunWildcard       = '*'
	anySingleWildcard    = '?'
	classOpen            = '['
	classClose           = ']'
	classNegation        = '!'
	classRangeSeparator  = '-'
	minimumRangeBodySize = 3
)

// MatchGlob reports whether name matches the whole of pattern.
//
// Grammar: '*' matches any run of characters
// (including '/'), '?' matches one character, and '[...]' matches one
// character from a class that may contain ranges and may be negated with a
// leading '!'. A '[' without a closing ']' is an ordinary character. Matching
// is case-sensitive.
func MatchGlob(pattern string, name string) bool {
	patternRunes := []rune(pattern)
	nameRunes := []rune(name)

	patternIndex := 0
	nameIndex := 0
	starPatternIndex := -1
	starNameIndex := -1

	for nameIndex < len(nameRunes) || patternIndex < len(patternRunes) {
		if patternIndex < len(patternRunes) {
			switch patternRunes[patternIndex] {
			case anyRunWildcard:
				starPatternIndex = patternIndex
				starNameIndex = nameIndex
				patternIndex++
				continue
			case anySingleWildcard:
				if nameIndex < len(nameRunes) {
					patternIndex++
					nameIndex++
					continue
				}
			case classOpen:
				if nameIndex < len(nameRunes) {
					classWidth, classTerminated := classExtent(patternRunes[patternIndex:])
					if classTerminated {
						classBody := patternRunes[patternIndex+1 : patternIndex+classWidth-1]
						if classContains(classBody, nameRunes[nameIndex]) {
							patternIndex += classWidth
							nameIndex++
							continue
						}
					} else if nameRunes[nameIndex] == classOpen {
						patternIndex++
						nameIndex++
						continue
					}
				}
			default:
				if nameIndex < len(nameRunes) && patternRunes[patternIndex] == nameRunes[nameIndex] {
					patternIndex++
					nameIndex++
					continue
				}
			}
		}

		if starPatternIndex >= 0 && starNameIndex < len(nameRunes) {
			starNameIndex++
			patternIndex = starPatternIndex + 1
			nameIndex = starNameIndex
			continue
		}
		return false
	}
	return true
}

// classExtent returns the width of the bracket class starting at classRunes[0],
// including both brackets. A ']' directly after '[' or '[!' belongs to the class.
func classExtent(classRunes []rune) (int, bool) {
	scanIndex := 1
	if scanIndex < len(classRunes) && classRunes[scanIndex] == classNegation {
		scanIndex++
	}
	if scanIndex < len(classRunes) && classRunes[scanIndex] == classClose {
		scanIndex++
	}
	for scanIndex < len(classRunes) && classRunes[scanIndex] != classClose {
		scanIndex++
	}
	if scanIndex >= len(classRunes) {
		return 0, false
	}
	return scanIndex + 1, true
}

// classContains evaluates the body of a bracket class, brackets excluded.
func classContains(classBody []rune, candidate rune) bool {
	negated := false
	if len(classBody) > 0 && classBody[0] == classNegation {
		negated = true
		classBody = classBody[1:]
	}

	matched := false
	for bodyIndex := 0; bodyIndex < len(classBody); {
		lowerBound := classBody[bodyIndex]
		if len(classBody)-bodyIndex >= minimumRangeBodySize && classBody[bodyIndex+1] == classRangeSeparator {
			upperBound := classBody[bodyIndex+2]
			if lowerBound <= candidate && candidate <= upperBound {
				matched = true
			}
			bodyIndex += minimumRangeBodySize
			continue
		}
		if lowerBound == candidate {
			matched = true
		}
		bodyIndex++
	}

	return matched != negated
}
