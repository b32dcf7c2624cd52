package workflow

import (
	"context"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/execshell"
	"github.com/temirov/forkbranch/internal/githubapi"
	"github.com/temirov/forkbranch/internal/githubauth"
	"github.com/temirov/forkbranch/internal/gitrepo"
)

// RepositoryOperator runs git commands that query remotes or change repository state.
type RepositoryOperator interface {
	ProbeRemote(executionContext context.Context, workspacePath string, remoteURL string) (gitrepo.Presence, error)
	Clone(executionContext context.Context, workspacePath string, remoteURL string, directoryName string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	ListRemotes(executionContext context.Context, repositoryPath string) (string, error)
	Fetch(executionContext context.Context, repositoryPath string, remoteName string) error
	Checkout(executionContext context.Context, repositoryPath string, branchName string) error
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error
	Merge(executionContext context.Context, repositoryPath string, reference string) error
	AbortMerge(executionContext context.Context, repositoryPath string) error
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// RepositoryInspector reads local repository state without modifying it.
type RepositoryInspector interface {
	RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, gitrepo.Presence, error)
	BranchPresence(executionContext context.Context, repositoryPath string, branchName string) (gitrepo.Presence, error)
}

// ForkCreator asks the hosting service to create a fork.
type ForkCreator interface {
	CreateFork(executionContext context.Context, request githubapi.ForkRequest) (githubapi.Fork, error)
}

// ToolLocator resolves executables on PATH.
type ToolLocator interface {
	Locate(toolName string) (string, error)
}

// FileSystem answers the disk questions asked about the setup script.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	IsExecutable(path string) (bool, error)
}

// ScriptExecutor runs repository-local scripts.
type ScriptExecutor interface {
	ExecuteScript(executionContext context.Context, scriptPath string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// TokenSource supplies the credential used for fork creation.
type TokenSource interface {
	Resolve() (githubauth.Token, bool)
}

// Dependencies configures the collaborators of a Service.
type Dependencies struct {
	Logger         *zap.Logger
	Operator       RepositoryOperator
	Inspector      RepositoryInspector
	ForkCreator    ForkCreator
	ToolLocator    ToolLocator
	FileSystem     FileSystem
	ScriptExecutor ScriptExecutor
	// TokenSource is optional; without it fork creation authenticates interactively.
	TokenSource TokenSource
	// Output receives the remote listing, setup script output and completion guidance.
	Output io.Writer
}
