package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/samber/lo"
)

const (
	environmentAssignmentSeparatorConstant = "="
)

// OSCommandRunner executes commands using the operating system facilities.
// Output is captured; input comes from CommandDetails.StandardInput or, when that is
// empty, from the optional interactive input source so credential prompts still work.
type OSCommandRunner struct {
	interactiveInput io.Reader
}

// NewOSCommandRunner constructs a runner backed by os/exec without interactive input.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// NewInteractiveOSCommandRunner constructs a runner that forwards interactiveInput to
// commands that were not given explicit standard input.
func NewInteractiveOSCommandRunner(interactiveInput io.Reader) *OSCommandRunner {
	return &OSCommandRunner{interactiveInput: interactiveInput}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	if len(command.Details.EnvironmentVariables) > 0 {
		assignments := lo.MapToSlice(command.Details.EnvironmentVariables, func(environmentKey string, environmentValue string) string {
			return environmentKey + environmentAssignmentSeparatorConstant + environmentValue
		})
		sort.Strings(assignments)
		executable.Env = append(os.Environ(), assignments...)
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	switch {
	case len(command.Details.StandardInput) > 0:
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	case runner.interactiveInput != nil:
		executable.Stdin = runner.interactiveInput
	}

	runError := executable.Run()
	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}
	return ExecutionResult{}, runError
}
