package utils

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestFindRepositoryDirectory(t *testing.T) {
	repositoryDirectory := t.TempDir()
	if err := os.Mkdir(filepath.Join(repositoryDirectory, GitDirectoryName), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", GitDirectoryName, err)
	}
	nestedDirectory := filepath.Join(repositoryDirectory, "a", "b")
	if err := os.MkdirAll(nestedDirectory, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	foundDirectory, err := findRepositoryDirectory(nestedDirectory)
	if err != nil {
		t.Fatalf("findRepositoryDirectory: %v", err)
	}
	if foundDirectory != repositoryDirectory {
		t.Fatalf("expected %s, got %s", repositoryDirectory, foundDirectory)
	}
}

func TestFindRepositoryDirectoryIgnoresGitFile(t *testing.T) {
	directory := t.TempDir()
	if err := os.WriteFile(filepath.Join(directory, GitDirectoryName), []byte("gitdir: elsewhere"), 0o644); err != nil {
		t.Fatalf("write %s file: %v", GitDirectoryName, err)
	}
	if foundDirectory, err := findRepositoryDirectory(directory); err == nil && foundDirectory == directory {
		t.Fatalf("a %s file must not mark a repository directory", GitDirectoryName)
	}
}

func TestNewApplicationLoggerLevels(t *testing.T) {
	quietLogger, err := NewApplicationLogger(false)
	if err != nil {
		t.Fatalf("quiet logger: %v", err)
	}
	if quietLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled without verbose")
	}
	verboseLogger, err := NewApplicationLogger(true)
	if err != nil {
		t.Fatalf("verbose logger: %v", err)
	}
	if !verboseLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug disabled with verbose")
	}
}
