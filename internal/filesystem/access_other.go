//go:build !unix

package filesystem

import "io/fs"

const executePermissionMaskConstant fs.FileMode = 0o111

func checkExecutable(_ string, fileInfo fs.FileInfo) (bool, error) {
	return fileInfo.Mode().Perm()&executePermissionMaskConstant != 0, nil
}
