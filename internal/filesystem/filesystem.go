package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	statErrorTemplateConstant = "failed to inspect %s: %w"
)

// OSFileSystem answers filesystem questions against the local disk.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// Stat returns file information for path.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// IsExecutable reports whether path is a regular file the current user may execute.
// A missing path is not an error.
func (fileSystem OSFileSystem) IsExecutable(path string) (bool, error) {
	fileInfo, statError := fileSystem.Stat(path)
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	if statError != nil {
		return false, fmt.Errorf(statErrorTemplateConstant, path, statError)
	}
	if !fileInfo.Mode().IsRegular() {
		return false, nil
	}
	return checkExecutable(path, fileInfo)
}
