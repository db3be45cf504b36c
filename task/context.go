// Copyright © 2024 The junkcheck authors

package task

import "os"

// Context describes the invocation a task runs in and the files it covers.
type Context interface {
	// Files returns the candidate file paths.
	Files() []string

	// ReadFile returns the content of one of the candidate files.
	ReadFile(path string) ([]byte, error)
}

// FileSet is a list of paths with a way to read them.
type FileSet struct {
	Paths []string

	// Read returns the content of a path.  If nil, os.ReadFile is used.
	Read func(path string) ([]byte, error)
}

func (fs *FileSet) Files() []string {
	return fs.Paths
}

func (fs *FileSet) ReadFile(path string) ([]byte, error) {
	if fs.Read == nil {
		return os.ReadFile(path) //nolint:gosec // reads user-specified source files
	}
	return fs.Read(path)
}

// PreCommitContext holds the files about to be committed.
type PreCommitContext struct {
	FileSet
}

// RunContext holds files selected by any other means, such as paths given on
// the command line.
type RunContext struct {
	FileSet
}

var (
	_ Context = (*PreCommitContext)(nil)
	_ Context = (*RunContext)(nil)
)
