// Package types defines the data structures shared across the dirtree packages.
package types

// CommandInit names the configuration initialization subcommand.
const CommandInit = "init"

// TreeSummary counts what a tree run wrote.
type TreeSummary struct {
	Directories      int
	Files            int
	PermissionDenied int
}

// Add accumulates other into the receiver.
func (summary *TreeSummary) Add(other TreeSummary) {
	summary.Directories += other.Directories
	summary.Files += other.Files
	summary.PermissionDenied += other.PermissionDenied
}
