// Package commands contains the logic behind each dirtree command.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/ignore"
	"github.com/temirov/dirtree/internal/types"
)

const (
	branchConnector             = "├── "
	lastBranchConnector         = "└── "
	continuationIndent          = "│   "
	blankIndent                 = "    "
	directoryNameSuffix         = "/"
	lineTerminator              = "\n"
	permissionDeniedPlaceholder = "[Permission Denied]"

	// errorCreateOutputFormat is used when the output file cannot be created.
	errorCreateOutputFormat = "creating output file %s: %w"
	// errorCloseOutputFormat is used when the output file cannot be flushed or closed.
	errorCloseOutputFormat = "closing output file %s: %w"
	// errorReadDirectoryFormat is used when a directory cannot be listed for reasons other than permissions.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorWriteTreeFormat is used when a tree line cannot be written.
	errorWriteTreeFormat = "writing tree line: %w"
)

// TreeWriter renders the directory hierarchy under a root directory as connector-annotated text.
type TreeWriter struct {
	rootDirectory string
	matcher       *ignore.Matcher
	logger        *zap.Logger
}

// NewTreeWriter builds a writer for rootDirectory filtering entries through ignorePatterns.
// A nil logger disables logging.
func NewTreeWriter(rootDirectory string, ignorePatterns []string, logger *zap.Logger) *TreeWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeWriter{
		rootDirectory: rootDirectory,
		matcher:       ignore.NewMatcher(rootDirectory, ignorePatterns),
		logger:        logger,
	}
}

// WriteFile renders the tree into outputFilePath, replacing any previous content.
// Every byte written to the file is also written to mirrors. The file is flushed
// and closed on every return path.
func (treeWriter *TreeWriter) WriteFile(outputFilePath string, mirrors ...io.Writer) (summary types.TreeSummary, err error) {
	fileHandle, createError := os.Create(outputFilePath)
	if createError != nil {
		return types.TreeSummary{}, fmt.Errorf(errorCreateOutputFormat, outputFilePath, createError)
	}
	bufferedWriter := bufio.NewWriter(fileHandle)
	defer func() {
		flushError := bufferedWriter.Flush()
		closeError := fileHandle.Close()
		if err != nil {
			return
		}
		if flushError != nil {
			err = fmt.Errorf(errorCloseOutputFormat, outputFilePath, flushError)
		} else if closeError != nil {
			err = fmt.Errorf(errorCloseOutputFormat, outputFilePath, closeError)
		}
	}()

	destination := io.Writer(bufferedWriter)
	if len(mirrors) > 0 {
		destination = io.MultiWriter(append([]io.Writer{bufferedWriter}, mirrors...)...)
	}
	return treeWriter.Write(destination)
}

// Write renders the tree to writer. The first line is the root directory's
// name followed by "/"; entries follow depth first, siblings in name order.
// A directory that cannot be listed for lack of permission is rendered as a
// single placeholder line; any other failure aborts the walk.
func (treeWriter *TreeWriter) Write(writer io.Writer) (types.TreeSummary, error) {
	if err := writeTreeLine(writer, "", rootDisplayName(treeWriter.rootDirectory)+directoryNameSuffix); err != nil {
		return types.TreeSummary{}, err
	}
	summary, err := treeWriter.walk(writer, treeWriter.rootDirectory, "")
	if err != nil {
		return summary, err
	}
	treeWriter.logger.Debug("tree rendered",
		zap.String("root", treeWriter.rootDirectory),
		zap.Int("patterns", len(treeWriter.matcher.Patterns())),
		zap.Int("directories", summary.Directories),
		zap.Int("files", summary.Files),
		zap.Int("permission_denied", summary.PermissionDenied),
	)
	return summary, nil
}

// walk writes the visible entries of currentDirectory, each line starting with prefix.
func (treeWriter *TreeWriter) walk(writer io.Writer, currentDirectory string, prefix string) (types.TreeSummary, error) {
	var summary types.TreeSummary

	// os.ReadDir returns entries sorted by file name.
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectory)
	if readDirectoryError != nil {
		if errors.Is(readDirectoryError, fs.ErrPermission) {
			treeWriter.logger.Warn("permission denied", zap.String("directory", currentDirectory))
			summary.PermissionDenied++
			return summary, writeTreeLine(writer, prefix+lastBranchConnector, permissionDeniedPlaceholder)
		}
		return summary, fmt.Errorf(errorReadDirectoryFormat, currentDirectory, readDirectoryError)
	}

	visibleNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if treeWriter.matcher.Ignored(filepath.Join(currentDirectory, directoryEntry.Name())) {
			continue
		}
		visibleNames = append(visibleNames, directoryEntry.Name())
	}

	for entryIndex, entryName := range visibleNames {
		isLastEntry := entryIndex == len(visibleNames)-1
		connector, childIndent := branchConnector, continuationIndent
		if isLastEntry {
			connector, childIndent = lastBranchConnector, blankIndent
		}
		if err := writeTreeLine(writer, prefix+connector, entryName); err != nil {
			return summary, err
		}

		entryPath := filepath.Join(currentDirectory, entryName)
		if !isDirectory(entryPath) {
			summary.Files++
			continue
		}
		summary.Directories++
		childSummary, err := treeWriter.walk(writer, entryPath, prefix+childIndent)
		summary.Add(childSummary)
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func writeTreeLine(writer io.Writer, linePrefix string, text string) error {
	if _, err := io.WriteString(writer, linePrefix+text+lineTerminator); err != nil {
		return fmt.Errorf(errorWriteTreeFormat, err)
	}
	return nil
}

// rootDisplayName returns the final element of rootDirectory, or an empty
// string for a filesystem root.
func rootDisplayName(rootDirectory string) string {
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		absoluteRoot = filepath.Clean(rootDirectory)
	}
	if filepath.Dir(absoluteRoot) == absoluteRoot {
		return ""
	}
	return filepath.Base(absoluteRoot)
}

// isDirectory follows symbolic links; a dangling link is not a directory.
func isDirectory(entryPath string) bool {
	fileInformation, statError := os.Stat(entryPath)
	return statError == nil && fileInformation.IsDir()
}
