// Package config loads ignore files into pattern slices and reads application configuration.
package config

import (
	"bufio"
	"bytes"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	commentPrefix         = "#"
	lineTerminators       = "\r\n"
	lineFeed              = '\n'
	initialLineBufferSize = 64 * 1024
)

// LoadIgnoreFilePatterns reads the ignore file at ignoreFilePath and returns its
// patterns in file order. Blank lines and lines starting with "#" are skipped and
// surrounding whitespace is trimmed. Lines end at "\n", "\r\n" or a bare "\r" and
// may be of any length. A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			zap.L().Warn("failed to close ignore file", zap.String("path", ignoreFilePath), zap.Error(closeError))
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialLineBufferSize), math.MaxInt)
	scanner.Split(scanUniversalLines)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// scanUniversalLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or "\r".
func scanUniversalLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if terminatorIndex := bytes.IndexAny(data, lineTerminators); terminatorIndex >= 0 {
		if data[terminatorIndex] == lineFeed {
			return terminatorIndex + 1, data[:terminatorIndex], nil
		}
		if terminatorIndex+1 < len(data) {
			if data[terminatorIndex+1] == lineFeed {
				return terminatorIndex + 2, data[:terminatorIndex], nil
			}
			return terminatorIndex + 1, data[:terminatorIndex], nil
		}
		if atEOF {
			return terminatorIndex + 1, data[:terminatorIndex], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
