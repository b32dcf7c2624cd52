package execshell_test

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/forkbranch/internal/execshell"
)

func skipWithoutPOSIXShell(testInstance *testing.T) {
	testInstance.Helper()
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}
}

func TestOSCommandRunnerReportsExitCodeWithoutError(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName("sh"),
		Details: execshell.CommandDetails{Arguments: []string{"-c", "echo out; echo err >&2; exit 3"}},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, result.ExitCode)
	require.Equal(testInstance, "out\n", result.StandardOutput)
	require.Equal(testInstance, "err\n", result.StandardError)
}

func TestOSCommandRunnerAppliesDirectoryEnvironmentAndInput(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	workingDirectory := testInstance.TempDir()
	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName("sh"),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", `pwd; printf '%s\n' "$FORKBRANCH_TEST_VALUE"; cat`},
			WorkingDirectory:     workingDirectory,
			EnvironmentVariables: map[string]string{"FORKBRANCH_TEST_VALUE": "configured"},
			StandardInput:        []byte("piped"),
		},
	})

	require.NoError(testInstance, runError)
	outputLines := strings.Split(strings.TrimSpace(result.StandardOutput), "\n")
	require.Len(testInstance, outputLines, 3)
	require.Contains(testInstance, outputLines[0], strings.TrimPrefix(workingDirectory, "/private"))
	require.Equal(testInstance, "configured", outputLines[1])
	require.Equal(testInstance, "piped", outputLines[2])
}

func TestInteractiveOSCommandRunnerForwardsInputWhenNoneIsProvided(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	runner := execshell.NewInteractiveOSCommandRunner(strings.NewReader("typed answer\n"))
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName("sh"),
		Details: execshell.CommandDetails{Arguments: []string{"-c", "read answer; echo \"$answer\""}},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, "typed answer\n", result.StandardOutput)
}

func TestOSCommandRunnerReturnsErrorForMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName("forkbranch-missing-executable"),
	})

	require.Error(testInstance, runError)
}
