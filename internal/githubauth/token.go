package githubauth

import (
	"os"
	"strings"

	"github.com/samber/lo"
)

// Environment variable names consulted for a GitHub token, in order of preference.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// EnvironmentLookup reads a single environment variable.
type EnvironmentLookup func(key string) (string, bool)

// Token is a resolved credential together with the variable it was read from.
type Token struct {
	Value  string
	Source string
}

// TokenResolver discovers GitHub tokens from the environment.
type TokenResolver struct {
	lookup EnvironmentLookup
}

// NewTokenResolver constructs a TokenResolver. A nil lookup reads the process environment.
func NewTokenResolver(lookup EnvironmentLookup) *TokenResolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &TokenResolver{lookup: lookup}
}

// Resolve returns the first non-blank token in preference order.
func (resolver *TokenResolver) Resolve() (Token, bool) {
	candidates := lo.FilterMap(tokenPreference, func(variableName string, _ int) (Token, bool) {
		value, exists := resolver.lookup(variableName)
		value = strings.TrimSpace(value)
		if !exists || len(value) == 0 {
			return Token{}, false
		}
		return Token{Value: value, Source: variableName}, true
	})
	if len(candidates) == 0 {
		return Token{}, false
	}
	return candidates[0], true
}

// MapLookup adapts a static map into an EnvironmentLookup.
func MapLookup(environment map[string]string) EnvironmentLookup {
	return func(key string) (string, bool) {
		value, exists := environment[key]
		return value, exists
	}
}
