package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testMessagesWorkingDirectoryConstant = "/workspace/mylib-feature-x"
	testMessagesForkURLConstant          = "git@github.com:alice/mylib.git"
)

func TestBuildStartedMessageForRecognisedCommands(t *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name:            "clone",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"clone", testMessagesForkURLConstant, "mylib-feature-x"}, WorkingDirectory: "/workspace"}},
			expectedMessage: "Cloning git@github.com:alice/mylib.git into mylib-feature-x",
		},
		{
			name:            "ls_remote",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"ls-remote", testMessagesForkURLConstant}}},
			expectedMessage: "Checking whether git@github.com:alice/mylib.git exists",
		},
		{
			name:            "remote_add",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"remote", "add", "acme", "git@github.com:acme/mylib.git"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Adding acme remote git@github.com:acme/mylib.git in /workspace/mylib-feature-x",
		},
		{
			name:            "remote_list",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"remote", "-v"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Listing remotes in /workspace/mylib-feature-x",
		},
		{
			name:            "fetch",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"fetch", "acme"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Fetching acme in /workspace/mylib-feature-x",
		},
		{
			name:            "checkout_existing",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"checkout", "master"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Switching /workspace/mylib-feature-x to branch master",
		},
		{
			name:            "checkout_create",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"checkout", "-b", "feature-x"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Creating branch feature-x in /workspace/mylib-feature-x",
		},
		{
			name:            "merge",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"merge", "--no-edit", "acme/master"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Merging acme/master in /workspace/mylib-feature-x",
		},
		{
			name:            "merge_abort",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"merge", "--abort"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Aborting merge in /workspace/mylib-feature-x",
		},
		{
			name:            "push_with_tracking",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"push", "--set-upstream", "origin", "feature-x"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Pushing feature-x to origin from /workspace/mylib-feature-x with upstream tracking",
		},
		{
			name:            "curl_fork_request",
			command:         ShellCommand{Name: CommandCurl, Details: CommandDetails{Arguments: []string{"--silent", "--request", "POST", "https://api.github.com/repos/acme/mylib/forks"}}},
			expectedMessage: "Sending POST https://api.github.com/repos/acme/mylib/forks",
		},
		{
			name:            "unrecognised_git_subcommand",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "--short"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Running git status --short (in /workspace/mylib-feature-x)",
		},
		{
			name:            "script",
			command:         ShellCommand{Name: CommandName("scripts/post-clone-setup.sh")},
			expectedMessage: "Running scripts/post-clone-setup.sh",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedMessage, CommandMessageFormatter{}.BuildStartedMessage(testCase.command))
		})
	}
}

func TestBuildFailureMessageIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"merge", "--no-edit", "acme/master"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "CONFLICT (content): Merge conflict in README\n"})

	require.Equal(t, "Failed to merge acme/master in /workspace/mylib-feature-x (exit code 1: CONFLICT (content): Merge conflict in README)", message)
}

func TestBuildExecutionFailureMessageFallsBackToUnknownError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"fetch", "acme"}}}

	require.Equal(t, "Unable to fetch acme in current directory: unknown error", formatter.BuildExecutionFailureMessage(command, nil))
	require.Equal(t, "Unable to fetch acme in current directory: exec: \"git\": executable file not found in $PATH", formatter.BuildExecutionFailureMessage(command, errors.New("exec: \"git\": executable file not found in $PATH")))
}

func TestBuildSuccessMessageForGenericCommand(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandName("scripts/post-clone-setup.sh")}

	require.Equal(t, "Completed scripts/post-clone-setup.sh", formatter.BuildSuccessMessage(command))
}
