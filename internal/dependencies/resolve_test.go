package dependencies_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/dependencies"
	"github.com/temirov/forkbranch/internal/execshell"
	"github.com/temirov/forkbranch/internal/githubapi"
	"github.com/temirov/forkbranch/internal/githubauth"
	"github.com/temirov/forkbranch/internal/gitrepo"
	"github.com/temirov/forkbranch/internal/workflow"
)

const (
	testRepositoryPathConstant = "/work/mylib"
	testRemoteNameConstant     = "upstream-org"
	testRemoteURLConstant      = "git@github.com:upstream-org/mylib.git"
	testTokenConstant          = "ghp_example"
	testAPIHostConstant        = "github.example.com/api/v3"
)

type recordingCommandRunner struct {
	commands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	return execshell.ExecutionResult{StandardOutput: "{}"}, nil
}

type stubInspector struct{}

func (stubInspector) RemoteURL(context.Context, string, string) (string, gitrepo.Presence, error) {
	return "", gitrepo.PresenceAbsent, nil
}

func (stubInspector) BranchPresence(context.Context, string, string) (gitrepo.Presence, error) {
	return gitrepo.PresenceAbsent, nil
}

func TestResolveWorkflowDependenciesSharesOneExecutor(testInstance *testing.T) {
	runner := &recordingCommandRunner{}
	echoOutput := &bytes.Buffer{}

	resolved, resolveError := dependencies.ResolveWorkflowDependencies(workflow.Dependencies{}, dependencies.Runtime{
		Logger:            zap.NewNop(),
		CommandEchoOutput: echoOutput,
		APIHost:           testAPIHostConstant,
		CommandRunner:     runner,
		Environment:       githubauth.MapLookup(map[string]string{githubauth.EnvGitHubToken: testTokenConstant}),
	})
	require.NoError(testInstance, resolveError)
	require.NotNil(testInstance, resolved.Inspector)
	require.NotNil(testInstance, resolved.FileSystem)
	require.NotNil(testInstance, resolved.ToolLocator)

	require.NoError(testInstance, resolved.Operator.AddRemote(context.Background(), testRepositoryPathConstant, testRemoteNameConstant, testRemoteURLConstant))

	token, found := resolved.TokenSource.Resolve()
	require.True(testInstance, found)
	_, forkError := resolved.ForkCreator.CreateFork(context.Background(), githubapi.ForkRequest{
		UpstreamOwner: testRemoteNameConstant,
		Repository:    "mylib",
		Account:       "alice",
		Token:         token.Value,
	})
	require.NoError(testInstance, forkError)

	_, scriptError := resolved.ScriptExecutor.ExecuteScript(context.Background(), "/work/mylib/scripts/post-clone-setup.sh", execshell.CommandDetails{WorkingDirectory: testRepositoryPathConstant})
	require.NoError(testInstance, scriptError)

	require.Len(testInstance, runner.commands, 3)
	require.Equal(testInstance, execshell.CommandGit, runner.commands[0].Name)
	require.Equal(testInstance, []string{"remote", "add", testRemoteNameConstant, testRemoteURLConstant}, runner.commands[0].Details.Arguments)
	require.Equal(testInstance, execshell.CommandCurl, runner.commands[1].Name)
	require.Contains(testInstance, runner.commands[1].Details.Arguments, "https://"+testAPIHostConstant+"/repos/upstream-org/mylib/forks")
	require.Equal(testInstance, execshell.CommandName("/work/mylib/scripts/post-clone-setup.sh"), runner.commands[2].Name)

	require.Contains(testInstance, echoOutput.String(), "$ git remote add "+testRemoteNameConstant+" "+testRemoteURLConstant)
	require.NotContains(testInstance, echoOutput.String(), testTokenConstant)
}

func TestResolveWorkflowDependenciesKeepsProvidedCollaborators(testInstance *testing.T) {
	inspector := stubInspector{}

	resolved, resolveError := dependencies.ResolveWorkflowDependencies(workflow.Dependencies{Inspector: inspector}, dependencies.Runtime{
		Logger:        zap.NewNop(),
		CommandRunner: &recordingCommandRunner{},
	})
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, inspector, resolved.Inspector)
}

func TestResolveWorkflowDependenciesRequiresLogger(testInstance *testing.T) {
	_, resolveError := dependencies.ResolveWorkflowDependencies(workflow.Dependencies{}, dependencies.Runtime{CommandRunner: &recordingCommandRunner{}})
	require.ErrorIs(testInstance, resolveError, execshell.ErrLoggerNotConfigured)
}
