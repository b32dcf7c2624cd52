package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/dependencies"
	"github.com/temirov/forkbranch/internal/ui"
	"github.com/temirov/forkbranch/internal/utils"
	"github.com/temirov/forkbranch/internal/utils/flags"
	pathutils "github.com/temirov/forkbranch/internal/utils/path"
	"github.com/temirov/forkbranch/internal/workflow"
)

const (
	applicationNameConstant                 = "forkbranch"
	applicationShortDescriptionConstant     = "Fork an upstream repository and prepare a branch for a pull request"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	upstreamFlagNameConstant                = "upstream"
	upstreamFlagUsageConstant               = "Upstream account or organization that owns the repository."
	primaryBranchFlagNameConstant           = "primary-branch"
	primaryBranchFlagUsageConstant          = "Primary branch synchronized from upstream."
	environmentPrefixConstant               = "FORKBRANCH"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	requiredArgumentCountConstant           = 4
	configurationInitializedMessageConstant = "configuration initialized"
	workflowStartedMessageConstant          = "starting fork workflow"
	workflowCompletedMessageConstant        = "fork workflow completed"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	logFieldRunIdentifierConstant           = "run_id"
	logFieldWorkspaceConstant               = "workspace"
	logFieldAccountConstant                 = "account"
	logFieldRepositoryConstant              = "repository"
	logFieldBranchConstant                  = "branch"
	logFieldUpstreamConstant                = "upstream"
	logFieldForkCreatedConstant             = "fork_created"
	logFieldClonedConstant                  = "cloned"
	logFieldBranchCreatedConstant           = "branch_created"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	workingDirectoryErrorTemplateConstant   = "unable to determine the current directory: %w"
	errorOutputTemplateConstant             = "forkbranch: %v"
)

var (
	logLevelChoices  = []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	logFormatChoices = []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Fork   workflow.Configuration         `mapstructure:"fork"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	input                 io.Reader
	output                io.Writer
	errorOutput           io.Writer
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	loggerOutputs         utils.LoggerOutputs
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	upstreamFlagValue     string
	primaryBranchValue    string

	// workflowDependencies and runtime replace production collaborators in tests.
	workflowDependencies     workflow.Dependencies
	runtime                  dependencies.Runtime
	workingDirectoryProvider func() (string, error)
	homeDirectoryProvider    pathutils.HomeDirectoryProvider
}

// Run executes forkbranch with the process arguments (program name first) and
// returns the exit status.
func Run(arguments []string, input io.Reader, output io.Writer, errorOutput io.Writer) int {
	return NewApplication(input, output, errorOutput).Run(arguments)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication(input io.Reader, output io.Writer, errorOutput io.Writer) *Application {
	if output == nil {
		output = io.Discard
	}
	if errorOutput == nil {
		errorOutput = io.Discard
	}

	application := &Application{
		input:       input,
		output:      output,
		errorOutput: errorOutput,
		configurationLoader: utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
			Name:              configurationNameConstant,
			Type:              configurationTypeConstant,
			EnvironmentPrefix: environmentPrefixConstant,
			SearchPaths:       []string{defaultConfigurationSearchPathConstant},
			Embedded:          EmbeddedDefaultConfiguration(),
		}),
		loggerFactory: utils.NewLoggerFactory(errorOutput),
		loggerOutputs: utils.LoggerOutputs{
			DiagnosticLogger: zap.NewNop(),
			ConsoleLogger:    zap.NewNop(),
		},
		workingDirectoryProvider: os.Getwd,
		homeDirectoryProvider:    os.UserHomeDir,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant + " <auth> <account> <repository> <branch>",
		Short:         applicationShortDescriptionConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) != requiredArgumentCountConstant {
				return nil
			}
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) != requiredArgumentCountConstant {
				return application.printUsage()
			}
			return application.runWorkflow(command.Context(), arguments)
		},
	}
	cobraCommand.SetHelpFunc(func(*cobra.Command, []string) {
		_ = application.printUsage()
	})
	// Arguments that do not parse as flags are a usage error, like a wrong argument count.
	cobraCommand.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return application.printUsage()
	})
	cobraCommand.SetIn(input)
	cobraCommand.SetOut(output)
	cobraCommand.SetErr(errorOutput)

	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flags.FormatChoiceUsage(string(utils.LogLevelWarn), logLevelChoices, logLevelFlagUsageConstant))
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flags.FormatChoiceUsage(string(utils.LogFormatConsole), logFormatChoices, logFormatFlagUsageConstant))
	cobraCommand.Flags().StringVar(&application.upstreamFlagValue, upstreamFlagNameConstant, "", upstreamFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.primaryBranchValue, primaryBranchFlagNameConstant, "", primaryBranchFlagUsageConstant)

	application.rootCommand = cobraCommand
	return application
}

// Run parses arguments, executes the root command and maps the outcome to an exit
// status: 0 on success or when usage was printed, 1 otherwise.
func (application *Application) Run(arguments []string) int {
	commandArguments := []string{}
	if len(arguments) > 1 {
		commandArguments = arguments[1:]
	}
	application.rootCommand.SetArgs(commandArguments)

	executionError := application.rootCommand.ExecuteContext(context.Background())
	if syncError := utils.SyncLogger(application.loggerOutputs.DiagnosticLogger); syncError != nil && executionError == nil {
		executionError = fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	if executionError == nil {
		return 0
	}

	styles := ui.NewStyles(application.errorOutput)
	fmt.Fprintln(application.errorOutput, styles.Render(styles.Failure, fmt.Sprintf(errorOutputTemplateConstant, executionError)))
	return 1
}

func (application *Application) printUsage() error {
	_, writeError := io.WriteString(application.output, usageTextConstant)
	return writeError
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	configurationFilePath := pathutils.ExpandHome(application.configurationFilePath, application.homeDirectoryProvider)
	loadedConfiguration, loadError := application.configurationLoader.Load(configurationFilePath, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if flags.Changed(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if flags.Changed(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if flags.Changed(command, upstreamFlagNameConstant) {
		application.configuration.Fork.UpstreamOwner = application.upstreamFlagValue
	}
	if flags.Changed(command, primaryBranchFlagNameConstant) {
		application.configuration.Fork.PrimaryBranch = application.primaryBranchValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		zap.String(logFieldRunIdentifierConstant, uuid.NewString()),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.loggerOutputs = loggerOutputs

	application.loggerOutputs.DiagnosticLogger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)
	return nil
}

func (application *Application) runWorkflow(executionContext context.Context, arguments []string) error {
	workspacePath, workingDirectoryError := application.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}

	options := workflow.Options{
		WorkspacePath:  workspacePath,
		Authentication: arguments[0],
		Account:        arguments[1],
		Repository:     arguments[2],
		Branch:         arguments[3],
	}

	logger := application.loggerOutputs.DiagnosticLogger
	runtime := application.runtime
	runtime.Logger = logger
	if application.loggerOutputs.HumanReadable {
		runtime.ConsoleLogger = application.loggerOutputs.ConsoleLogger
	}
	runtime.Input = application.input
	runtime.CommandEchoOutput = application.errorOutput
	runtime.Output = application.output
	runtime.APIHost = application.configuration.Fork.APIHost

	resolvedDependencies, resolveError := dependencies.ResolveWorkflowDependencies(application.workflowDependencies, runtime)
	if resolveError != nil {
		return resolveError
	}

	service, serviceError := workflow.NewService(application.configuration.Fork, resolvedDependencies)
	if serviceError != nil {
		return serviceError
	}

	logger.Info(
		workflowStartedMessageConstant,
		zap.String(logFieldWorkspaceConstant, options.WorkspacePath),
		zap.String(logFieldAccountConstant, options.Account),
		zap.String(logFieldRepositoryConstant, options.Repository),
		zap.String(logFieldBranchConstant, options.Branch),
		zap.String(logFieldUpstreamConstant, application.configuration.Fork.UpstreamOwner),
	)

	result, runError := service.Run(executionContext, options)
	if runError != nil {
		return runError
	}

	logger.Info(
		workflowCompletedMessageConstant,
		zap.String(logFieldWorkspaceConstant, result.WorkspacePath),
		zap.Bool(logFieldForkCreatedConstant, result.ForkCreated),
		zap.Bool(logFieldClonedConstant, result.Cloned),
		zap.Bool(logFieldBranchCreatedConstant, result.BranchCreated),
	)
	return nil
}
