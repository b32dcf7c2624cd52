package workflow

import (
	"strings"

	"github.com/temirov/forkbranch/internal/gitrepo"
)

// Options are the per-invocation parameters.
type Options struct {
	// WorkspacePath is the directory the run starts in. Every operation receives it
	// explicitly; the process working directory is never changed.
	WorkspacePath  string `mapstructure:"workspace" validate:"required"`
	Authentication string `mapstructure:"auth" validate:"required,oneof=ssh https"`
	Account        string `mapstructure:"account" validate:"required"`
	Repository     string `mapstructure:"repository" validate:"required"`
	Branch         string `mapstructure:"branch" validate:"required"`
}

// Sanitize trims surrounding whitespace and lower-cases the authentication scheme.
func (options Options) Sanitize() Options {
	return Options{
		WorkspacePath:  strings.TrimSpace(options.WorkspacePath),
		Authentication: strings.ToLower(strings.TrimSpace(options.Authentication)),
		Account:        strings.TrimSpace(options.Account),
		Repository:     strings.TrimSpace(options.Repository),
		Branch:         strings.TrimSpace(options.Branch),
	}
}

// Validate reports every invalid parameter as an InvalidOptionsError.
func (options Options) Validate() error {
	if validationError := structValidator.Struct(options); validationError != nil {
		return InvalidOptionsError{Problems: describeValidationProblems(validationError)}
	}
	return nil
}

// Protocol returns the remote protocol selected by Authentication.
func (options Options) Protocol() (gitrepo.RemoteProtocol, error) {
	return gitrepo.ParseRemoteProtocol(options.Authentication)
}

// CheckoutDirectoryName is the directory a fresh clone is placed in.
func (options Options) CheckoutDirectoryName() string {
	return options.Repository + checkoutDirectorySeparatorConstant + options.Branch
}

const checkoutDirectorySeparatorConstant = "-"
