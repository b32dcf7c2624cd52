package workflow

import (
	"errors"
	"fmt"
	"strings"
)

const (
	repositoryOperatorMissingMessageConstant  = "repository operator not configured"
	repositoryInspectorMissingMessageConstant = "repository inspector not configured"
	forkCreatorMissingMessageConstant         = "fork creator not configured"
	toolLocatorMissingMessageConstant         = "tool locator not configured"
	fileSystemMissingMessageConstant          = "file system not configured"
	scriptExecutorMissingMessageConstant      = "script executor not configured"
	invalidOptionsPrefixConstant              = "invalid arguments: "
	invalidConfigurationPrefixConstant        = "invalid configuration: "
	problemSeparatorConstant                  = "; "
	missingDependencyTemplateConstant         = "required tool %s was not found in PATH; install it and rerun"
	probeErrorTemplateConstant                = "unable to determine whether %s exists: %v"
)

const mergeConflictTemplateConstant = `%[1]s could not be merged into %[2]s automatically, so the merge was aborted.
The primary branch of your fork has diverged from upstream and must be reconciled by hand:
  git fetch %[3]s
  git checkout %[2]s
  git merge %[1]s
  # resolve the conflicts and commit
  git push %[4]s %[2]s
Then rerun forkbranch. See %[5]s`

var (
	// ErrRepositoryOperatorNotConfigured indicates the service was built without a RepositoryOperator.
	ErrRepositoryOperatorNotConfigured = errors.New(repositoryOperatorMissingMessageConstant)
	// ErrRepositoryInspectorNotConfigured indicates the service was built without a RepositoryInspector.
	ErrRepositoryInspectorNotConfigured = errors.New(repositoryInspectorMissingMessageConstant)
	// ErrForkCreatorNotConfigured indicates the service was built without a ForkCreator.
	ErrForkCreatorNotConfigured = errors.New(forkCreatorMissingMessageConstant)
	// ErrToolLocatorNotConfigured indicates the service was built without a ToolLocator.
	ErrToolLocatorNotConfigured = errors.New(toolLocatorMissingMessageConstant)
	// ErrFileSystemNotConfigured indicates the service was built without a FileSystem.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
	// ErrScriptExecutorNotConfigured indicates the service was built without a ScriptExecutor.
	ErrScriptExecutorNotConfigured = errors.New(scriptExecutorMissingMessageConstant)
)

// InvalidOptionsError lists every problem found in the invocation parameters.
type InvalidOptionsError struct {
	Problems []string
}

// Error describes the invalid parameters.
func (optionsError InvalidOptionsError) Error() string {
	return invalidOptionsPrefixConstant + strings.Join(optionsError.Problems, problemSeparatorConstant)
}

// ConfigurationError lists every problem found in the loaded configuration.
type ConfigurationError struct {
	Problems []string
}

// Error describes the invalid configuration.
func (configurationError ConfigurationError) Error() string {
	return invalidConfigurationPrefixConstant + strings.Join(configurationError.Problems, problemSeparatorConstant)
}

// MissingDependencyError reports a required executable that is not installed.
type MissingDependencyError struct {
	Tool  string
	Cause error
}

// Error names the missing tool.
func (dependencyError MissingDependencyError) Error() string {
	return fmt.Sprintf(missingDependencyTemplateConstant, dependencyError.Tool)
}

// Unwrap exposes the lookup failure.
func (dependencyError MissingDependencyError) Unwrap() error {
	return dependencyError.Cause
}

// ProbeError reports a state query that could not be answered.
type ProbeError struct {
	Subject string
	Cause   error
}

// Error describes the failed query.
func (probeError ProbeError) Error() string {
	return fmt.Sprintf(probeErrorTemplateConstant, probeError.Subject, probeError.Cause)
}

// Unwrap exposes the underlying failure.
func (probeError ProbeError) Unwrap() error {
	return probeError.Cause
}

// MergeConflictError reports that upstream's primary branch could not be merged into
// the fork's. The merge has already been aborted when this error is returned.
type MergeConflictError struct {
	UpstreamRemote   string
	OriginRemote     string
	Branch           string
	DocumentationURL string
	Cause            error
}

// Error explains the divergence and the manual remediation.
func (conflictError MergeConflictError) Error() string {
	upstreamReference := conflictError.UpstreamRemote + "/" + conflictError.Branch
	documentationURL := conflictError.DocumentationURL
	if len(documentationURL) == 0 {
		documentationURL = defaultDocumentationURLConstant
	}
	return fmt.Sprintf(
		mergeConflictTemplateConstant,
		upstreamReference,
		conflictError.Branch,
		conflictError.UpstreamRemote,
		conflictError.OriginRemote,
		documentationURL,
	)
}

// Unwrap exposes the failed merge.
func (conflictError MergeConflictError) Unwrap() error {
	return conflictError.Cause
}
