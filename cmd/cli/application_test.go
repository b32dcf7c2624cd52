package cli_test

import (
	"bytes"
	"testing"

	"4d63.com/testcli"
	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/forkbranch/cmd/cli"
	"github.com/temirov/forkbranch/internal/workflow"
)

const (
	usageHeadingConstant         = "Usage:"
	upstreamOwnerEnvironmentName = "FORKBRANCH_FORK_UPSTREAM_OWNER"
)

func TestRunPrintsUsageForWrongArgumentCount(testInstance *testing.T) {
	testInstance.Setenv(upstreamOwnerEnvironmentName, "")

	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "no_arguments", arguments: []string{"forkbranch"}},
		{name: "one_argument", arguments: []string{"forkbranch", "ssh"}},
		{name: "three_arguments", arguments: []string{"forkbranch", "ssh", "alice", "mylib"}},
		{name: "five_arguments", arguments: []string{"forkbranch", "ssh", "alice", "mylib", "feature-x", "extra"}},
		{name: "help_flag", arguments: []string{"forkbranch", "--help"}},
		{name: "unknown_shorthand_flag", arguments: []string{"forkbranch", "-v"}},
		{name: "unknown_long_flag", arguments: []string{"forkbranch", "--version"}},
		{name: "unknown_flag_between_arguments", arguments: []string{"forkbranch", "ssh", "-x"}},
		{name: "flag_missing_value", arguments: []string{"forkbranch", "ssh", "alice", "mylib", "feature-x", "--upstream"}},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			testcli.Chdir(subTest, testcli.MkdirTemp(subTest))

			exitCode, stdout, stderr := testcli.Main(subTest, testCase.arguments, nil, cli.Run)
			require.Equal(subTest, 0, exitCode, stderr)
			require.Contains(subTest, stdout, usageHeadingConstant)
			require.Contains(subTest, stdout, "<auth> <account> <repository> <branch>")
			require.Empty(subTest, stderr)
		})
	}
}

func TestRunReportsInvalidInput(testInstance *testing.T) {
	testInstance.Setenv(upstreamOwnerEnvironmentName, "")

	testCases := []struct {
		name             string
		arguments        []string
		expectedProblems []string
	}{
		{
			name:             "blank_upstream_owner",
			arguments:        []string{"forkbranch", "--upstream", " ", "ssh", "alice", "mylib", "feature-x"},
			expectedProblems: []string{"upstream_owner is required"},
		},
		{
			name:             "unsupported_authentication",
			arguments:        []string{"forkbranch", "--upstream", "upstream-org", "ftp", "alice", "mylib", "feature-x"},
			expectedProblems: []string{"auth must be one of: ssh, https"},
		},
		{
			name:             "unsupported_log_level",
			arguments:        []string{"forkbranch", "--log-level", "verbose", "--upstream", "upstream-org", "ssh", "alice", "mylib", "feature-x"},
			expectedProblems: []string{"unsupported log level: verbose"},
		},
		{
			name:             "missing_configuration_file",
			arguments:        []string{"forkbranch", "--config", "absent.yaml", "ssh", "alice", "mylib", "feature-x"},
			expectedProblems: []string{"unable to load configuration"},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			testcli.Chdir(subTest, testcli.MkdirTemp(subTest))

			exitCode, stdout, stderr := testcli.Main(subTest, testCase.arguments, nil, cli.Run)
			require.Equal(subTest, 1, exitCode)
			require.NotContains(subTest, stdout, usageHeadingConstant)
			require.Contains(subTest, stderr, "forkbranch: ")
			for _, expectedProblem := range testCase.expectedProblems {
				require.Contains(subTest, stderr, expectedProblem)
			}
		})
	}
}

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	var rawConfiguration map[string]any
	require.NoError(testInstance, yaml.NewDecoder(bytes.NewReader(cli.EmbeddedDefaultConfiguration())).Decode(&rawConfiguration))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &configuration,
		ErrorUnused: true,
	})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(rawConfiguration))

	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "github.com", configuration.Fork.Host)
	require.Equal(testInstance, "api.github.com", configuration.Fork.APIHost)
	require.Equal(testInstance, "origin", configuration.Fork.OriginRemote)
	require.Equal(testInstance, "master", configuration.Fork.PrimaryBranch)
	require.Equal(testInstance, "scripts/post-clone-setup.sh", configuration.Fork.SetupScript)
	require.Equal(testInstance, "curl", configuration.Fork.HTTPClient)
	require.Equal(testInstance, "temirov", configuration.Fork.UpstreamOwner)
	require.Equal(testInstance, workflow.DefaultConfiguration(), configuration.Fork)

	mutated := cli.EmbeddedDefaultConfiguration()
	mutated[0] = '#'
	require.NotEqual(testInstance, mutated, cli.EmbeddedDefaultConfiguration())
}
