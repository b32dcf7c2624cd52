package filesystem_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/forkbranch/internal/filesystem"
)

const (
	testScriptNameConstant    = "post-clone-setup.sh"
	testScriptContentConstant = "#!/bin/sh\nexit 0\n"
)

func TestOSFileSystemIsExecutable(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip("execute permission bits are not meaningful on windows")
	}

	workspace := testInstance.TempDir()
	executablePath := filepath.Join(workspace, "executable-"+testScriptNameConstant)
	plainPath := filepath.Join(workspace, "plain-"+testScriptNameConstant)
	require.NoError(testInstance, os.WriteFile(executablePath, []byte(testScriptContentConstant), 0o755))
	require.NoError(testInstance, os.WriteFile(plainPath, []byte(testScriptContentConstant), 0o644))

	testCases := []struct {
		name       string
		path       string
		executable bool
	}{
		{name: "executable_file", path: executablePath, executable: true},
		{name: "plain_file", path: plainPath, executable: false},
		{name: "directory", path: workspace, executable: false},
		{name: "missing_file", path: filepath.Join(workspace, "missing.sh"), executable: false},
	}

	fileSystem := filesystem.NewOSFileSystem()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executable, checkError := fileSystem.IsExecutable(testCase.path)
			require.NoError(testInstance, checkError)
			require.Equal(testInstance, testCase.executable, executable)
		})
	}
}

func TestOSFileSystemStat(testInstance *testing.T) {
	workspace := testInstance.TempDir()

	fileInfo, statError := filesystem.NewOSFileSystem().Stat(workspace)
	require.NoError(testInstance, statError)
	require.True(testInstance, fileInfo.IsDir())

	_, missingError := filesystem.NewOSFileSystem().Stat(filepath.Join(workspace, "missing"))
	require.ErrorIs(testInstance, missingError, os.ErrNotExist)
}
