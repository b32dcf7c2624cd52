//go:build unix

package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

const accessErrorTemplateConstant = "failed to check execute permission on %s: %w"

func checkExecutable(path string, _ fs.FileInfo) (bool, error) {
	accessError := unix.Access(path, unix.X_OK)
	switch {
	case accessError == nil:
		return true, nil
	case errors.Is(accessError, unix.EACCES), errors.Is(accessError, unix.ENOENT):
		return false, nil
	default:
		return false, fmt.Errorf(accessErrorTemplateConstant, path, accessError)
	}
}
