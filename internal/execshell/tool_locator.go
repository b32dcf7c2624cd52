package execshell

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	toolNameRequiredMessageConstant = "tool name must be provided"
	toolNotFoundTemplateConstant    = "required tool %q was not found on PATH: %v"
)

// ErrToolNameRequired indicates an empty tool name was passed to the locator.
var ErrToolNameRequired = errors.New(toolNameRequiredMessageConstant)

// ToolNotFoundError reports an executable that is not installed or not on PATH.
type ToolNotFoundError struct {
	ToolName string
	Cause    error
}

// Error describes the missing tool.
func (notFoundError ToolNotFoundError) Error() string {
	return fmt.Sprintf(toolNotFoundTemplateConstant, notFoundError.ToolName, notFoundError.Cause)
}

// Unwrap exposes the lookup failure.
func (notFoundError ToolNotFoundError) Unwrap() error {
	return notFoundError.Cause
}

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(file string) (string, error)

// ToolLocator checks that external executables are available before they are needed.
type ToolLocator struct {
	lookPath LookPathFunc
}

// NewToolLocator builds a locator around lookPath, defaulting to exec.LookPath.
func NewToolLocator(lookPath LookPathFunc) *ToolLocator {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &ToolLocator{lookPath: lookPath}
}

// Locate returns the resolved path of toolName or a ToolNotFoundError.
func (locator *ToolLocator) Locate(toolName string) (string, error) {
	trimmedToolName := strings.TrimSpace(toolName)
	if len(trimmedToolName) == 0 {
		return "", ErrToolNameRequired
	}
	resolvedPath, lookupError := locator.lookPath(trimmedToolName)
	if lookupError != nil {
		return "", ToolNotFoundError{ToolName: trimmedToolName, Cause: lookupError}
	}
	return resolvedPath, nil
}
