package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/forkbranch/internal/execshell"
)

const (
	commandEchoPrefixConstant      = "$ "
	commandFailureTemplateConstant = "%s exited with code %d"
)

// CommandEchoObserver prints each command before it runs and the captured error
// output of any command that fails.
type CommandEchoObserver struct {
	output io.Writer
	styles Styles
}

// NewCommandEchoObserver constructs an observer writing to output.
func NewCommandEchoObserver(output io.Writer) *CommandEchoObserver {
	if output == nil {
		output = io.Discard
	}
	return &CommandEchoObserver{output: output, styles: NewStyles(output)}
}

// CommandStarted echoes the command line.
func (observer *CommandEchoObserver) CommandStarted(command execshell.ShellCommand) {
	fmt.Fprintln(observer.output, observer.styles.Render(observer.styles.Command, commandEchoPrefixConstant+command.Describe()))
}

// CommandCompleted relays the error output of a non-zero exit.
func (observer *CommandEchoObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if result.ExitCode == 0 {
		return
	}
	message := strings.TrimSpace(result.StandardError)
	if len(message) == 0 {
		message = fmt.Sprintf(commandFailureTemplateConstant, command.Describe(), result.ExitCode)
	}
	fmt.Fprintln(observer.output, observer.styles.Render(observer.styles.Failure, message))
}

// CommandExecutionFailed reports why the command could not run.
func (observer *CommandEchoObserver) CommandExecutionFailed(_ execshell.ShellCommand, failure error) {
	if failure == nil {
		return
	}
	fmt.Fprintln(observer.output, observer.styles.Render(observer.styles.Failure, failure.Error()))
}
