package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/forkbranch/internal/gitrepo"
	"github.com/temirov/forkbranch/internal/workflow"
)

func TestConfigurationSanitizeDefaultsUpstreamRemote(testInstance *testing.T) {
	testCases := []struct {
		name           string
		upstreamOwner  string
		upstreamRemote string
		expectedRemote string
	}{
		{name: "defaults_to_owner", upstreamOwner: " upstream-org ", expectedRemote: "upstream-org"},
		{name: "keeps_explicit_remote", upstreamOwner: "upstream-org", upstreamRemote: " upstream ", expectedRemote: "upstream"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			configuration := workflow.DefaultConfiguration()
			configuration.UpstreamOwner = testCase.upstreamOwner
			configuration.UpstreamRemote = testCase.upstreamRemote

			sanitized := configuration.Sanitize()
			require.Equal(subTest, testCase.expectedRemote, sanitized.UpstreamRemote)
			require.Equal(subTest, "upstream-org", sanitized.UpstreamOwner)
			require.NoError(subTest, sanitized.Validate())
		})
	}
}

func TestDefaultConfigurationIsValid(testInstance *testing.T) {
	configuration := workflow.DefaultConfiguration().Sanitize()

	require.NoError(testInstance, configuration.Validate())
	require.Equal(testInstance, "temirov", configuration.UpstreamOwner)
	require.Equal(testInstance, "temirov", configuration.UpstreamRemote)
}

func TestConfigurationValidateReportsEveryProblem(testInstance *testing.T) {
	configuration := workflow.Configuration{DocumentationURL: "not a url"}

	validationError := configuration.Sanitize().Validate()

	var configurationError workflow.ConfigurationError
	require.ErrorAs(testInstance, validationError, &configurationError)
	require.ElementsMatch(testInstance, []string{
		"host is required",
		"api_host is required",
		"upstream_owner is required",
		"origin_remote is required",
		"primary_branch is required",
		"http_client is required",
		"documentation_url must be a valid URL",
	}, configurationError.Problems)
	require.ErrorContains(testInstance, validationError, "invalid configuration: ")
}

func TestOptionsHelpers(testInstance *testing.T) {
	options := workflow.Options{
		WorkspacePath:  " /work ",
		Authentication: " SSH ",
		Account:        "alice",
		Repository:     "mylib",
		Branch:         "feature/login",
	}.Sanitize()

	require.NoError(testInstance, options.Validate())
	require.Equal(testInstance, "/work", options.WorkspacePath)

	protocol, protocolError := options.Protocol()
	require.NoError(testInstance, protocolError)
	require.Equal(testInstance, gitrepo.RemoteProtocolSSH, protocol)
	require.Equal(testInstance, "mylib-feature/login", options.CheckoutDirectoryName())
}

func TestOptionsValidateRequiresEveryArgument(testInstance *testing.T) {
	validationError := workflow.Options{}.Validate()

	var optionsError workflow.InvalidOptionsError
	require.ErrorAs(testInstance, validationError, &optionsError)
	require.ElementsMatch(testInstance, []string{
		"workspace is required",
		"auth is required",
		"account is required",
		"repository is required",
		"branch is required",
	}, optionsError.Problems)
}
