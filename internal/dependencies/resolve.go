package dependencies

import (
	"io"

	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/execshell"
	"github.com/temirov/forkbranch/internal/filesystem"
	"github.com/temirov/forkbranch/internal/githubapi"
	"github.com/temirov/forkbranch/internal/githubauth"
	"github.com/temirov/forkbranch/internal/gitrepo"
	"github.com/temirov/forkbranch/internal/ui"
	"github.com/temirov/forkbranch/internal/workflow"
)

// Runtime describes the process-level resources the default collaborators use.
type Runtime struct {
	Logger        *zap.Logger
	ConsoleLogger *zap.Logger
	// Input is forwarded to commands that may prompt, such as curl asking for a password.
	Input io.Reader
	// CommandEchoOutput receives the echoed command lines.
	CommandEchoOutput io.Writer
	Output            io.Writer
	APIHost           string
	// Test hooks; nil selects the operating system implementation.
	CommandRunner execshell.CommandRunner
	LookPath      execshell.LookPathFunc
	Environment   githubauth.EnvironmentLookup
}

// ResolveCommandRunner returns the provided runner or an os/exec runner wired to input.
func ResolveCommandRunner(existing execshell.CommandRunner, input io.Reader) execshell.CommandRunner {
	if existing != nil {
		return existing
	}
	return execshell.NewInteractiveOSCommandRunner(input)
}

// ResolveShellExecutor constructs the executor every external command goes through.
// Commands are echoed to echoOutput and narrated through consoleLogger.
func ResolveShellExecutor(logger *zap.Logger, consoleLogger *zap.Logger, runner execshell.CommandRunner, echoOutput io.Writer) (*execshell.ShellExecutor, error) {
	observers := []execshell.CommandEventObserver{ui.NewCommandEchoObserver(echoOutput)}
	if consoleLogger != nil {
		observers = append(observers, ui.NewConsoleCommandEventLogger(consoleLogger))
	}
	return execshell.NewShellExecutor(logger, runner, observers...)
}

// ResolveRepositoryInspector returns the provided inspector or a go-git backed default.
func ResolveRepositoryInspector(existing workflow.RepositoryInspector, logger *zap.Logger) workflow.RepositoryInspector {
	if existing != nil {
		return existing
	}
	return gitrepo.NewInspector(logger)
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing workflow.FileSystem) workflow.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.NewOSFileSystem()
}

// ResolveToolLocator returns the provided locator or one backed by lookPath.
func ResolveToolLocator(existing workflow.ToolLocator, lookPath execshell.LookPathFunc) workflow.ToolLocator {
	if existing != nil {
		return existing
	}
	return execshell.NewToolLocator(lookPath)
}

// ResolveTokenSource returns the provided source or an environment-backed resolver.
func ResolveTokenSource(existing workflow.TokenSource, lookup githubauth.EnvironmentLookup) workflow.TokenSource {
	if existing != nil {
		return existing
	}
	return githubauth.NewTokenResolver(lookup)
}

// ResolveWorkflowDependencies fills every collaborator missing from existing with its
// production implementation. Git, the fork API and the setup script share one executor.
func ResolveWorkflowDependencies(existing workflow.Dependencies, runtime Runtime) (workflow.Dependencies, error) {
	resolved := existing
	if resolved.Logger == nil {
		resolved.Logger = runtime.Logger
	}
	if resolved.Output == nil {
		resolved.Output = runtime.Output
	}

	if resolved.Operator == nil || resolved.ForkCreator == nil || resolved.ScriptExecutor == nil {
		runner := ResolveCommandRunner(runtime.CommandRunner, runtime.Input)
		shellExecutor, executorError := ResolveShellExecutor(resolved.Logger, runtime.ConsoleLogger, runner, runtime.CommandEchoOutput)
		if executorError != nil {
			return workflow.Dependencies{}, executorError
		}

		if resolved.Operator == nil {
			repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
			if managerError != nil {
				return workflow.Dependencies{}, managerError
			}
			resolved.Operator = repositoryManager
		}
		if resolved.ForkCreator == nil {
			forkClient, clientError := githubapi.NewClient(shellExecutor, runtime.APIHost)
			if clientError != nil {
				return workflow.Dependencies{}, clientError
			}
			resolved.ForkCreator = forkClient
		}
		if resolved.ScriptExecutor == nil {
			resolved.ScriptExecutor = shellExecutor
		}
	}

	resolved.Inspector = ResolveRepositoryInspector(resolved.Inspector, resolved.Logger)
	resolved.FileSystem = ResolveFileSystem(resolved.FileSystem)
	resolved.ToolLocator = ResolveToolLocator(resolved.ToolLocator, runtime.LookPath)
	resolved.TokenSource = ResolveTokenSource(resolved.TokenSource, runtime.Environment)
	return resolved, nil
}
