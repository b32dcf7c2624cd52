package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/forkbranch/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant        = "git executor not configured"
	remoteAlreadyExistsMessageConstant       = "remote already exists"
	remoteAlreadyExistsTemplateConstant      = "%w: %s"
	gitAlreadyExistsOutputFragmentConstant   = "already exists"
	gitLSRemoteSubcommandConstant            = "ls-remote"
	gitHeadReferenceConstant                 = "HEAD"
	gitCloneSubcommandConstant               = "clone"
	gitRemoteSubcommandConstant              = "remote"
	gitRemoteAddSubcommandConstant           = "add"
	gitRemoteVerboseFlagConstant             = "-v"
	gitFetchSubcommandConstant               = "fetch"
	gitCheckoutSubcommandConstant            = "checkout"
	gitCreateBranchFlagConstant              = "-b"
	gitMergeSubcommandConstant               = "merge"
	gitMergeNoEditFlagConstant               = "--no-edit"
	gitMergeAbortFlagConstant                = "--abort"
	gitPushSubcommandConstant                = "push"
	gitSetUpstreamFlagConstant               = "--set-upstream"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableValue = "0"
	localeEnvironmentNameConstant            = "LC_ALL"
	localeEnvironmentPortableValueConstant   = "C"
)

var (
	// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)
	// ErrRemoteAlreadyExists indicates git refused to add a remote whose name is taken.
	ErrRemoteAlreadyExists = errors.New(remoteAlreadyExistsMessageConstant)
)

// GitExecutor is the subset of execshell.ShellExecutor the manager needs.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations by invoking the git CLI.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ProbeRemote reports whether remoteURL can be listed. Credential prompts are disabled
// so a missing https repository fails instead of asking for a password.
func (manager *RepositoryManager) ProbeRemote(executionContext context.Context, workspacePath string, remoteURL string) (Presence, error) {
	_, probeError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitLSRemoteSubcommandConstant, remoteURL, gitHeadReferenceConstant},
		WorkingDirectory:     workspacePath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableValue},
	})
	if probeError == nil {
		return PresencePresent, nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(probeError, &failedError) {
		return PresenceAbsent, nil
	}
	return PresenceUnknown, probeError
}

// Clone clones remoteURL into directoryName relative to workspacePath.
func (manager *RepositoryManager) Clone(executionContext context.Context, workspacePath string, remoteURL string, directoryName string) error {
	return manager.run(executionContext, workspacePath, gitCloneSubcommandConstant, remoteURL, directoryName)
}

// AddRemote registers a remote. An existing remote of the same name yields an error
// matching ErrRemoteAlreadyExists. git runs in the C locale so its refusal can be recognized.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, addError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{localeEnvironmentNameConstant: localeEnvironmentPortableValueConstant},
	})
	if addError == nil {
		return nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(addError, &failedError) && strings.Contains(failedError.Result.StandardError, gitAlreadyExistsOutputFragmentConstant) {
		return fmt.Errorf(remoteAlreadyExistsTemplateConstant, ErrRemoteAlreadyExists, remoteName)
	}
	return addError
}

// ListRemotes returns the output of git remote -v.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, listError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteVerboseFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if listError != nil {
		return "", listError
	}
	return executionResult.StandardOutput, nil
}

// Fetch fetches the named remote.
func (manager *RepositoryManager) Fetch(executionContext context.Context, repositoryPath string, remoteName string) error {
	return manager.run(executionContext, repositoryPath, gitFetchSubcommandConstant, remoteName)
}

// Checkout switches to an existing branch.
func (manager *RepositoryManager) Checkout(executionContext context.Context, repositoryPath string, branchName string) error {
	return manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, branchName)
}

// CreateBranch creates branchName at the current position and switches to it.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, branchName)
}

// Merge merges reference into the current branch without opening an editor.
func (manager *RepositoryManager) Merge(executionContext context.Context, repositoryPath string, reference string) error {
	return manager.run(executionContext, repositoryPath, gitMergeSubcommandConstant, gitMergeNoEditFlagConstant, reference)
}

// AbortMerge restores the pre-merge state after a failed merge.
func (manager *RepositoryManager) AbortMerge(executionContext context.Context, repositoryPath string) error {
	return manager.run(executionContext, repositoryPath, gitMergeSubcommandConstant, gitMergeAbortFlagConstant)
}

// Push pushes branchName to remoteName.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	return manager.run(executionContext, repositoryPath, gitPushSubcommandConstant, remoteName, branchName)
}

// PushWithUpstream pushes branchName to remoteName and records it as the upstream.
func (manager *RepositoryManager) PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	return manager.run(executionContext, repositoryPath, gitPushSubcommandConstant, gitSetUpstreamFlagConstant, remoteName, branchName)
}

func (manager *RepositoryManager) run(executionContext context.Context, workingDirectory string, arguments ...string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: workingDirectory,
	})
	return executionError
}
