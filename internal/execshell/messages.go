package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	specificFailureSuffixTemplateConstant   = " (exit code %d%s)"
	specificExecutionFailureTemplate        = "%s: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	emptyStringConstant                     = ""
)

const (
	gitCloneSubcommandNameConstant    = "clone"
	gitLSRemoteSubcommandNameConstant = "ls-remote"
	gitRemoteSubcommandNameConstant   = "remote"
	gitRemoteAddSubcommandConstant    = "add"
	gitRemoteVerboseFlagConstant      = "-v"
	gitFetchSubcommandNameConstant    = "fetch"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitCreateBranchFlagConstant       = "-b"
	gitMergeSubcommandNameConstant    = "merge"
	gitMergeAbortFlagConstant         = "--abort"
	gitPushSubcommandNameConstant     = "push"
	gitSetUpstreamFlagConstant        = "--set-upstream"
	gitOptionPrefixConstant           = "-"
	curlRequestFlagConstant           = "--request"
	curlDefaultMethodConstant         = "GET"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// lifecycleMessages holds the four phrasings of one recognised command.
type lifecycleMessages struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	var messages lifecycleMessages
	var recognised bool
	switch command.Name {
	case CommandGit:
		messages, recognised = formatter.describeGit(command)
	case CommandCurl:
		messages, recognised = formatter.describeCurl(command)
	}
	if !recognised {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return messages.start
	case messageStageSuccess:
		return messages.success
	case messageStageFailure:
		return messages.failure + fmt.Sprintf(specificFailureSuffixTemplateConstant, result.ExitCode, formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(specificExecutionFailureTemplate, messages.executionFailure, describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGit(command ShellCommand) (lifecycleMessages, bool) {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return lifecycleMessages{}, false
	}
	workingDirectory := describeWorkingDirectory(command)
	positional := positionalArguments(arguments[1:])

	switch strings.TrimSpace(arguments[0]) {
	case gitCloneSubcommandNameConstant:
		if len(positional) < 2 {
			return lifecycleMessages{}, false
		}
		source, destination := positional[0], positional[1]
		return lifecycleMessages{
			start:            fmt.Sprintf("Cloning %s into %s", source, destination),
			success:          fmt.Sprintf("Cloned %s into %s", source, destination),
			failure:          fmt.Sprintf("Failed to clone %s into %s", source, destination),
			executionFailure: fmt.Sprintf("Unable to clone %s into %s", source, destination),
		}, true
	case gitLSRemoteSubcommandNameConstant:
		if len(positional) < 1 {
			return lifecycleMessages{}, false
		}
		remote := positional[0]
		return lifecycleMessages{
			start:            fmt.Sprintf("Checking whether %s exists", remote),
			success:          fmt.Sprintf("%s exists", remote),
			failure:          fmt.Sprintf("%s is not reachable", remote),
			executionFailure: fmt.Sprintf("Unable to query %s", remote),
		}, true
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemote(arguments[1:], workingDirectory)
	case gitFetchSubcommandNameConstant:
		if len(positional) < 1 {
			return lifecycleMessages{}, false
		}
		remote := positional[0]
		return lifecycleMessages{
			start:            fmt.Sprintf("Fetching %s in %s", remote, workingDirectory),
			success:          fmt.Sprintf("Fetched %s in %s", remote, workingDirectory),
			failure:          fmt.Sprintf("Failed to fetch %s in %s", remote, workingDirectory),
			executionFailure: fmt.Sprintf("Unable to fetch %s in %s", remote, workingDirectory),
		}, true
	case gitCheckoutSubcommandNameConstant:
		if len(positional) < 1 {
			return lifecycleMessages{}, false
		}
		branch := positional[0]
		if containsArgument(arguments, gitCreateBranchFlagConstant) {
			return lifecycleMessages{
				start:            fmt.Sprintf("Creating branch %s in %s", branch, workingDirectory),
				success:          fmt.Sprintf("Created branch %s in %s", branch, workingDirectory),
				failure:          fmt.Sprintf("Failed to create branch %s in %s", branch, workingDirectory),
				executionFailure: fmt.Sprintf("Unable to create branch %s in %s", branch, workingDirectory),
			}, true
		}
		return lifecycleMessages{
			start:            fmt.Sprintf("Switching %s to branch %s", workingDirectory, branch),
			success:          fmt.Sprintf("%s now on branch %s", workingDirectory, branch),
			failure:          fmt.Sprintf("Failed to switch %s to branch %s", workingDirectory, branch),
			executionFailure: fmt.Sprintf("Unable to switch %s to branch %s", workingDirectory, branch),
		}, true
	case gitMergeSubcommandNameConstant:
		if containsArgument(arguments, gitMergeAbortFlagConstant) {
			return lifecycleMessages{
				start:            fmt.Sprintf("Aborting merge in %s", workingDirectory),
				success:          fmt.Sprintf("Aborted merge in %s", workingDirectory),
				failure:          fmt.Sprintf("Failed to abort merge in %s", workingDirectory),
				executionFailure: fmt.Sprintf("Unable to abort merge in %s", workingDirectory),
			}, true
		}
		if len(positional) < 1 {
			return lifecycleMessages{}, false
		}
		reference := positional[0]
		return lifecycleMessages{
			start:            fmt.Sprintf("Merging %s in %s", reference, workingDirectory),
			success:          fmt.Sprintf("Merged %s in %s", reference, workingDirectory),
			failure:          fmt.Sprintf("Failed to merge %s in %s", reference, workingDirectory),
			executionFailure: fmt.Sprintf("Unable to merge %s in %s", reference, workingDirectory),
		}, true
	case gitPushSubcommandNameConstant:
		if len(positional) < 2 {
			return lifecycleMessages{}, false
		}
		remote, branch := positional[0], positional[1]
		tracking := emptyStringConstant
		if containsArgument(arguments, gitSetUpstreamFlagConstant) {
			tracking = " with upstream tracking"
		}
		return lifecycleMessages{
			start:            fmt.Sprintf("Pushing %s to %s from %s%s", branch, remote, workingDirectory, tracking),
			success:          fmt.Sprintf("Pushed %s to %s from %s%s", branch, remote, workingDirectory, tracking),
			failure:          fmt.Sprintf("Failed to push %s to %s from %s", branch, remote, workingDirectory),
			executionFailure: fmt.Sprintf("Unable to push %s to %s from %s", branch, remote, workingDirectory),
		}, true
	default:
		return lifecycleMessages{}, false
	}
}

func (formatter CommandMessageFormatter) describeGitRemote(arguments []string, workingDirectory string) (lifecycleMessages, bool) {
	if len(arguments) == 0 {
		return lifecycleMessages{}, false
	}
	if arguments[0] == gitRemoteVerboseFlagConstant {
		return lifecycleMessages{
			start:            fmt.Sprintf("Listing remotes in %s", workingDirectory),
			success:          fmt.Sprintf("Listed remotes in %s", workingDirectory),
			failure:          fmt.Sprintf("Failed to list remotes in %s", workingDirectory),
			executionFailure: fmt.Sprintf("Unable to list remotes in %s", workingDirectory),
		}, true
	}
	if arguments[0] == gitRemoteAddSubcommandConstant && len(arguments) >= 3 {
		name, url := arguments[1], arguments[2]
		return lifecycleMessages{
			start:            fmt.Sprintf("Adding %s remote %s in %s", name, url, workingDirectory),
			success:          fmt.Sprintf("Added %s remote %s in %s", name, url, workingDirectory),
			failure:          fmt.Sprintf("Failed to add %s remote %s in %s", name, url, workingDirectory),
			executionFailure: fmt.Sprintf("Unable to add %s remote %s in %s", name, url, workingDirectory),
		}, true
	}
	return lifecycleMessages{}, false
}

func (formatter CommandMessageFormatter) describeCurl(command ShellCommand) (lifecycleMessages, bool) {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return lifecycleMessages{}, false
	}
	method := curlDefaultMethodConstant
	for index, argument := range arguments {
		if argument == curlRequestFlagConstant && index+1 < len(arguments) {
			method = arguments[index+1]
		}
	}
	endpoint := arguments[len(arguments)-1]
	return lifecycleMessages{
		start:            fmt.Sprintf("Sending %s %s", method, endpoint),
		success:          fmt.Sprintf("Sent %s %s", method, endpoint),
		failure:          fmt.Sprintf("%s %s failed", method, endpoint),
		executionFailure: fmt.Sprintf("Unable to send %s %s", method, endpoint),
	}, true
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := command.Describe()
	if trimmedDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedDirectory) > 0 {
		label += fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedDirectory)
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, describeFailure(failure))
	}
}

func describeWorkingDirectory(command ShellCommand) string {
	trimmedDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedDirectory
}

func describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if strings.HasPrefix(argument, gitOptionPrefixConstant) {
			continue
		}
		positional = append(positional, argument)
	}
	return positional
}

func containsArgument(arguments []string, target string) bool {
	for _, argument := range arguments {
		if argument == target {
			return true
		}
	}
	return false
}
