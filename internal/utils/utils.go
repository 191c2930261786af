// Package utils contains helpers and names shared across the dirtree tool.
package utils

// File and directory names used across the project.
const (
	// GitIgnoreFileName is the ignore file read from the root directory.
	GitIgnoreFileName = ".gitignore"
	// TreeOutputFileName is the file the rendered tree is written to.
	TreeOutputFileName = "tree_output.txt"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".dirtree.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".dirtree"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
)
