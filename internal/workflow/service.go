package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/execshell"
	"github.com/temirov/forkbranch/internal/githubapi"
	"github.com/temirov/forkbranch/internal/gitrepo"
)

const (
	stageErrorTemplateConstant            = "failed to %s: %w"
	abortMergeErrorTemplateConstant       = "failed to abort merge: %w"
	setupScriptInspectTemplateConstant    = "failed to inspect setup script %s: %w"
	setupScriptRunTemplateConstant        = "failed to run setup script %s: %w"
	setupScriptInterpreterConstant        = "sh"
	remoteReferenceSeparatorConstant      = "/"
	resolveForkStageNameConstant          = "resolve fork"
	resolveCheckoutStageNameConstant      = "resolve checkout"
	configureUpstreamStageNameConstant    = "configure upstream remote"
	synchronizePrimaryStageNameConstant   = "synchronize primary branch"
	resolveBranchStageNameConstant        = "resolve branch"
	renderGuidanceStageNameConstant       = "print next steps"
	forkExistsLogMessageConstant          = "fork already exists"
	forkCreatedLogMessageConstant         = "fork created"
	forkResponseUnreadableLogMessage      = "fork created but the response could not be decoded"
	checkoutReusedLogMessageConstant      = "reusing existing checkout"
	checkoutClonedLogMessageConstant      = "cloned fork"
	setupScriptMissingLogMessageConstant  = "no setup script found"
	setupScriptNotExecutableLogMessage    = "setup script is not executable; running it with sh"
	setupScriptDirectoryLogMessage        = "setup script path is a directory; skipping it"
	setupScriptCompletedLogMessage        = "setup script completed"
	upstreamRemoteAddedLogMessageConstant = "upstream remote added"
	upstreamRemoteExistsLogMessage        = "upstream remote already configured"
	upstreamRemoteMismatchLogMessage      = "existing upstream remote points to a different repository"
	synchronizationSkippedLogMessage      = "fork was just created; skipping synchronization"
	synchronizationCompletedLogMessage    = "primary branch synchronized with upstream"
	branchReusedLogMessageConstant        = "switched to existing branch"
	branchCreatedLogMessageConstant       = "created branch"
	logFieldForkURLConstant               = "fork_url"
	logFieldForkNameConstant              = "fork_name"
	logFieldForkPageConstant              = "fork_page"
	logFieldTokenSourceConstant           = "token_source"
	logFieldWorkspaceConstant             = "workspace"
	logFieldOriginURLConstant             = "origin_url"
	logFieldScriptConstant                = "script"
	logFieldRemoteConstant                = "remote"
	logFieldExpectedURLConstant           = "expected_url"
	logFieldActualURLConstant             = "actual_url"
	logFieldBranchConstant                = "branch"
)

// Result records which actions a run took.
type Result struct {
	WorkspacePath       string
	ForkURL             string
	ForkPreexisted      bool
	ForkCreated         bool
	Cloned              bool
	WorkspaceChanged    bool
	SetupScriptExecuted bool
	UpstreamRemoteAdded bool
	Synchronized        bool
	BranchCreated       bool
}

// Service runs the fork-and-branch workflow.
type Service struct {
	configuration Configuration
	logger        *zap.Logger
	operator      RepositoryOperator
	inspector     RepositoryInspector
	forkCreator   ForkCreator
	toolLocator   ToolLocator
	fileSystem    FileSystem
	scripts       ScriptExecutor
	tokens        TokenSource
	output        io.Writer
}

// runState carries the values one run threads between stages.
type runState struct {
	options  Options
	protocol gitrepo.RemoteProtocol
	result   Result
}

type stage struct {
	name    string
	execute func(executionContext context.Context, state *runState) error
}

// NewService validates configuration and wires the collaborators.
func NewService(configuration Configuration, dependencies Dependencies) (*Service, error) {
	switch {
	case dependencies.Operator == nil:
		return nil, ErrRepositoryOperatorNotConfigured
	case dependencies.Inspector == nil:
		return nil, ErrRepositoryInspectorNotConfigured
	case dependencies.ForkCreator == nil:
		return nil, ErrForkCreatorNotConfigured
	case dependencies.ToolLocator == nil:
		return nil, ErrToolLocatorNotConfigured
	case dependencies.FileSystem == nil:
		return nil, ErrFileSystemNotConfigured
	case dependencies.ScriptExecutor == nil:
		return nil, ErrScriptExecutorNotConfigured
	}

	sanitizedConfiguration := configuration.Sanitize()
	if validationError := sanitizedConfiguration.Validate(); validationError != nil {
		return nil, validationError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{
		configuration: sanitizedConfiguration,
		logger:        logger,
		operator:      dependencies.Operator,
		inspector:     dependencies.Inspector,
		forkCreator:   dependencies.ForkCreator,
		toolLocator:   dependencies.ToolLocator,
		fileSystem:    dependencies.FileSystem,
		scripts:       dependencies.ScriptExecutor,
		tokens:        dependencies.TokenSource,
		output:        output,
	}, nil
}

// Run executes every stage in order and stops at the first failure. The returned
// Result reflects the stages that completed.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	sanitizedOptions := options.Sanitize()
	if validationError := sanitizedOptions.Validate(); validationError != nil {
		return Result{}, validationError
	}
	protocol, protocolError := sanitizedOptions.Protocol()
	if protocolError != nil {
		return Result{}, InvalidOptionsError{Problems: []string{protocolError.Error()}}
	}

	state := &runState{
		options:  sanitizedOptions,
		protocol: protocol,
		result:   Result{WorkspacePath: sanitizedOptions.WorkspacePath},
	}

	stages := []stage{
		{name: resolveForkStageNameConstant, execute: service.resolveFork},
		{name: resolveCheckoutStageNameConstant, execute: service.resolveCheckout},
		{name: configureUpstreamStageNameConstant, execute: service.configureUpstreamRemote},
		{name: synchronizePrimaryStageNameConstant, execute: service.synchronizePrimaryBranch},
		{name: resolveBranchStageNameConstant, execute: service.resolveBranch},
		{name: renderGuidanceStageNameConstant, execute: service.renderGuidance},
	}

	for _, currentStage := range stages {
		if stageError := currentStage.execute(executionContext, state); stageError != nil {
			return state.result, fmt.Errorf(stageErrorTemplateConstant, currentStage.name, stageError)
		}
	}
	return state.result, nil
}

func (service *Service) resolveFork(executionContext context.Context, state *runState) error {
	forkURL, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   state.protocol,
		Host:       service.configuration.Host,
		Owner:      state.options.Account,
		Repository: state.options.Repository,
	})
	if formatError != nil {
		return formatError
	}
	state.result.ForkURL = forkURL

	presence, probeError := service.operator.ProbeRemote(executionContext, state.result.WorkspacePath, forkURL)
	if probeError != nil {
		return ProbeError{Subject: forkURL, Cause: probeError}
	}

	switch presence {
	case gitrepo.PresencePresent:
		state.result.ForkPreexisted = true
		service.logger.Info(forkExistsLogMessageConstant, zap.String(logFieldForkURLConstant, forkURL))
		return nil
	case gitrepo.PresenceAbsent:
		return service.createFork(executionContext, state)
	default:
		return ProbeError{Subject: forkURL, Cause: errors.New(presence.String())}
	}
}

func (service *Service) createFork(executionContext context.Context, state *runState) error {
	if _, locateError := service.toolLocator.Locate(service.configuration.HTTPClient); locateError != nil {
		return MissingDependencyError{Tool: service.configuration.HTTPClient, Cause: locateError}
	}

	request := githubapi.ForkRequest{
		UpstreamOwner: service.configuration.UpstreamOwner,
		Repository:    state.options.Repository,
		Account:       state.options.Account,
	}
	tokenSource := ""
	if service.tokens != nil {
		if token, found := service.tokens.Resolve(); found {
			request.Token = token.Value
			tokenSource = token.Source
		}
	}

	fork, createError := service.forkCreator.CreateFork(executionContext, request)
	var decodingError githubapi.ResponseDecodingError
	switch {
	case errors.As(createError, &decodingError):
		service.logger.Warn(forkResponseUnreadableLogMessage, zap.Error(decodingError))
	case createError != nil:
		return createError
	default:
		service.logger.Info(
			forkCreatedLogMessageConstant,
			zap.String(logFieldForkNameConstant, fork.FullName),
			zap.String(logFieldForkPageConstant, fork.HTMLURL),
			zap.String(logFieldTokenSourceConstant, tokenSource),
		)
	}
	state.result.ForkCreated = true
	return nil
}

func (service *Service) resolveCheckout(executionContext context.Context, state *runState) error {
	workspacePath := state.result.WorkspacePath
	originURL, originPresence, inspectError := service.inspector.RemoteURL(executionContext, workspacePath, service.configuration.OriginRemote)
	if inspectError != nil {
		return ProbeError{Subject: workspacePath, Cause: inspectError}
	}

	if originPresence == gitrepo.PresencePresent && gitrepo.EquivalentRemoteURLs(originURL, state.result.ForkURL) {
		service.logger.Info(checkoutReusedLogMessageConstant, zap.String(logFieldWorkspaceConstant, workspacePath))
		return service.runSetupScript(executionContext, state)
	}

	directoryName := state.options.CheckoutDirectoryName()
	checkoutPath := filepath.Join(workspacePath, directoryName)
	checkoutOriginURL, checkoutPresence, checkoutInspectError := service.inspector.RemoteURL(executionContext, checkoutPath, service.configuration.OriginRemote)
	if checkoutInspectError != nil {
		return ProbeError{Subject: checkoutPath, Cause: checkoutInspectError}
	}

	if checkoutPresence == gitrepo.PresencePresent && gitrepo.EquivalentRemoteURLs(checkoutOriginURL, state.result.ForkURL) {
		service.logger.Info(checkoutReusedLogMessageConstant, zap.String(logFieldWorkspaceConstant, checkoutPath))
	} else {
		if cloneError := service.operator.Clone(executionContext, workspacePath, state.result.ForkURL, directoryName); cloneError != nil {
			return cloneError
		}
		state.result.Cloned = true
		service.logger.Info(
			checkoutClonedLogMessageConstant,
			zap.String(logFieldForkURLConstant, state.result.ForkURL),
			zap.String(logFieldWorkspaceConstant, checkoutPath),
			zap.String(logFieldOriginURLConstant, originURL),
		)
	}

	state.result.WorkspacePath = checkoutPath
	state.result.WorkspaceChanged = true
	return service.runSetupScript(executionContext, state)
}

func (service *Service) runSetupScript(executionContext context.Context, state *runState) error {
	if len(service.configuration.SetupScript) == 0 {
		return nil
	}
	scriptPath := filepath.Join(state.result.WorkspacePath, filepath.FromSlash(service.configuration.SetupScript))
	scriptField := zap.String(logFieldScriptConstant, scriptPath)

	scriptInfo, statError := service.fileSystem.Stat(scriptPath)
	if errors.Is(statError, fs.ErrNotExist) {
		service.logger.Debug(setupScriptMissingLogMessageConstant, scriptField)
		return nil
	}
	if statError != nil {
		return fmt.Errorf(setupScriptInspectTemplateConstant, scriptPath, statError)
	}
	if scriptInfo.IsDir() {
		service.logger.Warn(setupScriptDirectoryLogMessage, scriptField)
		return nil
	}

	executable, executableError := service.fileSystem.IsExecutable(scriptPath)
	if executableError != nil {
		return fmt.Errorf(setupScriptInspectTemplateConstant, scriptPath, executableError)
	}
	command := scriptPath
	details := execshell.CommandDetails{WorkingDirectory: state.result.WorkspacePath}
	if !executable {
		service.logger.Warn(setupScriptNotExecutableLogMessage, scriptField)
		command = setupScriptInterpreterConstant
		details.Arguments = []string{scriptPath}
	}

	executionResult, executionError := service.scripts.ExecuteScript(executionContext, command, details)
	if executionError != nil {
		return fmt.Errorf(setupScriptRunTemplateConstant, scriptPath, executionError)
	}
	fmt.Fprint(service.output, executionResult.StandardOutput)

	state.result.SetupScriptExecuted = true
	service.logger.Info(setupScriptCompletedLogMessage, scriptField)
	return nil
}

func (service *Service) configureUpstreamRemote(executionContext context.Context, state *runState) error {
	upstreamURL, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   state.protocol,
		Host:       service.configuration.Host,
		Owner:      service.configuration.UpstreamOwner,
		Repository: state.options.Repository,
	})
	if formatError != nil {
		return formatError
	}

	workspacePath := state.result.WorkspacePath
	remoteName := service.configuration.UpstreamRemote
	addError := service.operator.AddRemote(executionContext, workspacePath, remoteName, upstreamURL)
	switch {
	case addError == nil:
		state.result.UpstreamRemoteAdded = true
		service.logger.Info(upstreamRemoteAddedLogMessageConstant, zap.String(logFieldRemoteConstant, remoteName))
	case errors.Is(addError, gitrepo.ErrRemoteAlreadyExists):
		service.reportExistingUpstreamRemote(executionContext, workspacePath, remoteName, upstreamURL)
	default:
		return addError
	}

	remoteListing, listError := service.operator.ListRemotes(executionContext, workspacePath)
	if listError != nil {
		return listError
	}
	fmt.Fprint(service.output, remoteListing)
	return nil
}

func (service *Service) reportExistingUpstreamRemote(executionContext context.Context, workspacePath string, remoteName string, expectedURL string) {
	existingURL, presence, inspectError := service.inspector.RemoteURL(executionContext, workspacePath, remoteName)
	if inspectError == nil && presence == gitrepo.PresencePresent && !gitrepo.EquivalentRemoteURLs(existingURL, expectedURL) {
		service.logger.Warn(
			upstreamRemoteMismatchLogMessage,
			zap.String(logFieldRemoteConstant, remoteName),
			zap.String(logFieldExpectedURLConstant, expectedURL),
			zap.String(logFieldActualURLConstant, existingURL),
		)
		return
	}
	service.logger.Info(upstreamRemoteExistsLogMessage, zap.String(logFieldRemoteConstant, remoteName))
}

func (service *Service) synchronizePrimaryBranch(executionContext context.Context, state *runState) error {
	if !state.result.ForkPreexisted {
		service.logger.Info(synchronizationSkippedLogMessage)
		return nil
	}

	workspacePath := state.result.WorkspacePath
	upstreamRemote := service.configuration.UpstreamRemote
	primaryBranch := service.configuration.PrimaryBranch

	if fetchError := service.operator.Fetch(executionContext, workspacePath, upstreamRemote); fetchError != nil {
		return fetchError
	}
	if checkoutError := service.operator.Checkout(executionContext, workspacePath, primaryBranch); checkoutError != nil {
		return checkoutError
	}

	mergeError := service.operator.Merge(executionContext, workspacePath, upstreamRemote+remoteReferenceSeparatorConstant+primaryBranch)
	var failedMerge execshell.CommandFailedError
	switch {
	case mergeError == nil:
	case errors.As(mergeError, &failedMerge):
		conflictError := MergeConflictError{
			UpstreamRemote:   upstreamRemote,
			OriginRemote:     service.configuration.OriginRemote,
			Branch:           primaryBranch,
			DocumentationURL: service.configuration.DocumentationURL,
			Cause:            mergeError,
		}
		if abortError := service.operator.AbortMerge(executionContext, workspacePath); abortError != nil {
			return errors.Join(conflictError, fmt.Errorf(abortMergeErrorTemplateConstant, abortError))
		}
		return conflictError
	default:
		return mergeError
	}

	if pushError := service.operator.Push(executionContext, workspacePath, service.configuration.OriginRemote, primaryBranch); pushError != nil {
		return pushError
	}
	state.result.Synchronized = true
	service.logger.Info(synchronizationCompletedLogMessage, zap.String(logFieldBranchConstant, primaryBranch))
	return nil
}

func (service *Service) resolveBranch(executionContext context.Context, state *runState) error {
	workspacePath := state.result.WorkspacePath
	branchName := state.options.Branch

	presence, probeError := service.inspector.BranchPresence(executionContext, workspacePath, branchName)
	if probeError != nil {
		return ProbeError{Subject: branchName, Cause: probeError}
	}

	switch presence {
	case gitrepo.PresencePresent:
		if checkoutError := service.operator.Checkout(executionContext, workspacePath, branchName); checkoutError != nil {
			return checkoutError
		}
		service.logger.Info(branchReusedLogMessageConstant, zap.String(logFieldBranchConstant, branchName))
	case gitrepo.PresenceAbsent:
		if createError := service.operator.CreateBranch(executionContext, workspacePath, branchName); createError != nil {
			return createError
		}
		state.result.BranchCreated = true
		service.logger.Info(branchCreatedLogMessageConstant, zap.String(logFieldBranchConstant, branchName))
	default:
		return ProbeError{Subject: branchName, Cause: errors.New(presence.String())}
	}

	return service.operator.PushWithUpstream(executionContext, workspacePath, service.configuration.OriginRemote, branchName)
}

func (service *Service) renderGuidance(_ context.Context, state *runState) error {
	return RenderGuidance(service.output, service.configuration, state.options, state.result)
}
