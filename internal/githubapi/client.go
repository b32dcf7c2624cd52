package githubapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/forkbranch/internal/execshell"
)

const (
	silentFlagConstant                      = "--silent"
	showErrorFlagConstant                   = "--show-error"
	failFlagConstant                        = "--fail"
	requestFlagConstant                     = "--request"
	headerFlagConstant                      = "--header"
	userFlagConstant                        = "--user"
	headerFromStandardInputConstant         = "@-"
	httpMethodPostConstant                  = "POST"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	apiVersionHeaderValueConstant           = "X-GitHub-Api-Version: 2022-11-28"
	authorizationHeaderTemplateConstant     = "Authorization: Bearer %s\n"
	forksEndpointTemplateConstant           = "https://%s/repos/%s/%s/forks"
	defaultAPIHostConstant                  = "api.github.com"
	upstreamOwnerFieldNameConstant          = "upstream_owner"
	repositoryFieldNameConstant             = "repository"
	accountFieldNameConstant                = "account"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "fork api executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	createForkOperationNameConstant         = OperationName("CreateFork")
)

// OperationName identifies a GitHub API call issued by the client.
type OperationName string

// HTTPExecutor is the minimal interface required from execshell.ShellExecutor.
type HTTPExecutor interface {
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ForkRequest describes a fork to create under the authenticated account.
type ForkRequest struct {
	UpstreamOwner string
	Repository    string
	// Account is used for interactive basic authentication when Token is empty.
	Account string
	Token   string
}

// Fork holds the fields of the API response forkbranch reports.
type Fork struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for request fields.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for API calls.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates the call succeeded but its body could not be decoded.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// Client issues GitHub REST calls through the configured HTTP client utility.
type Client struct {
	executor HTTPExecutor
	apiHost  string
}

// NewClient constructs a Client. An empty apiHost selects api.github.com.
func NewClient(executor HTTPExecutor, apiHost string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	trimmedHost := strings.TrimSpace(apiHost)
	if len(trimmedHost) == 0 {
		trimmedHost = defaultAPIHostConstant
	}
	return &Client{executor: executor, apiHost: trimmedHost}, nil
}

// ForkEndpoint returns the URL CreateFork posts to.
func (client *Client) ForkEndpoint(upstreamOwner string, repository string) string {
	return fmt.Sprintf(forksEndpointTemplateConstant, client.apiHost, upstreamOwner, repository)
}

// CreateFork asks GitHub to fork UpstreamOwner/Repository. The token travels through
// standard input so it never appears in the echoed command line.
//
// A ResponseDecodingError means the fork request itself succeeded.
func (client *Client) CreateFork(executionContext context.Context, request ForkRequest) (Fork, error) {
	upstreamOwner := strings.TrimSpace(request.UpstreamOwner)
	if len(upstreamOwner) == 0 {
		return Fork{}, InvalidInputError{FieldName: upstreamOwnerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	repository := strings.TrimSpace(request.Repository)
	if len(repository) == 0 {
		return Fork{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	token := strings.TrimSpace(request.Token)
	account := strings.TrimSpace(request.Account)
	if len(token) == 0 && len(account) == 0 {
		return Fork{}, InvalidInputError{FieldName: accountFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{
		silentFlagConstant,
		showErrorFlagConstant,
		failFlagConstant,
		requestFlagConstant,
		httpMethodPostConstant,
		headerFlagConstant,
		acceptHeaderValueConstant,
		headerFlagConstant,
		apiVersionHeaderValueConstant,
	}

	commandDetails := execshell.CommandDetails{}
	if len(token) > 0 {
		arguments = append(arguments, headerFlagConstant, headerFromStandardInputConstant)
		commandDetails.StandardInput = []byte(fmt.Sprintf(authorizationHeaderTemplateConstant, token))
	} else {
		arguments = append(arguments, userFlagConstant, account)
	}
	commandDetails.Arguments = append(arguments, client.ForkEndpoint(upstreamOwner, repository))

	executionResult, executionError := client.executor.ExecuteCurl(executionContext, commandDetails)
	if executionError != nil {
		return Fork{}, OperationError{Operation: createForkOperationNameConstant, Cause: executionError}
	}

	var fork Fork
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &fork); decodingError != nil {
		return Fork{}, ResponseDecodingError{Operation: createForkOperationNameConstant, Cause: decodingError}
	}
	return fork, nil
}
