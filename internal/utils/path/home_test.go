package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/forkbranch/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/alice"

func TestExpandHome(testInstance *testing.T) {
	homeProvider := func() (string, error) {
		return testHomeDirectoryConstant, nil
	}
	failingProvider := func() (string, error) {
		return "", errors.New("no home")
	}

	testCases := []struct {
		name         string
		input        string
		provider     pathutils.HomeDirectoryProvider
		expectedPath string
	}{
		{name: "tilde_only", input: "~", provider: homeProvider, expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", input: "~/.config/forkbranch.yaml", provider: homeProvider, expectedPath: filepath.Join(testHomeDirectoryConstant, ".config/forkbranch.yaml")},
		{name: "absolute", input: "/etc/forkbranch.yaml", provider: homeProvider, expectedPath: "/etc/forkbranch.yaml"},
		{name: "other_user", input: "~bob/config.yaml", provider: homeProvider, expectedPath: "~bob/config.yaml"},
		{name: "lookup_failure", input: "~/config.yaml", provider: failingProvider, expectedPath: "~/config.yaml"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedPath, pathutils.ExpandHome(testCase.input, testCase.provider))
		})
	}
}
