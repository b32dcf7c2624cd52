package gitrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap"
)

const (
	repositoryOpenErrorTemplateConstant = "failed to open repository at %s: %w"
	remoteLookupErrorTemplateConstant   = "failed to read remote %s in %s: %w"
	branchLookupErrorTemplateConstant   = "failed to look up branch %s in %s: %w"
	remoteInspectedLogMessageConstant   = "inspected remote"
	branchInspectedLogMessageConstant   = "inspected branch"
	logFieldRepositoryPathConstant      = "repository_path"
	logFieldRemoteNameConstant          = "remote"
	logFieldRemoteURLConstant           = "url"
	logFieldBranchNameConstant          = "branch"
	logFieldPresenceConstant            = "presence"
)

// Inspector answers read-only questions about a local repository by reading its
// on-disk state directly, without spawning git.
type Inspector struct {
	logger *zap.Logger
}

// NewInspector constructs an Inspector. A nil logger disables logging.
func NewInspector(logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{logger: logger}
}

// RemoteURL returns the first URL of remoteName in the repository at repositoryPath.
// A missing repository or remote is reported as PresenceAbsent.
func (inspector *Inspector) RemoteURL(_ context.Context, repositoryPath string, remoteName string) (string, Presence, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if errors.Is(openError, git.ErrRepositoryNotExists) {
		inspector.logRemote(repositoryPath, remoteName, "", PresenceAbsent)
		return "", PresenceAbsent, nil
	}
	if openError != nil {
		return "", PresenceUnknown, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	remote, remoteError := repository.Remote(remoteName)
	if errors.Is(remoteError, git.ErrRemoteNotFound) {
		inspector.logRemote(repositoryPath, remoteName, "", PresenceAbsent)
		return "", PresenceAbsent, nil
	}
	if remoteError != nil {
		return "", PresenceUnknown, fmt.Errorf(remoteLookupErrorTemplateConstant, remoteName, repositoryPath, remoteError)
	}

	remoteURLs := remote.Config().URLs
	if len(remoteURLs) == 0 {
		inspector.logRemote(repositoryPath, remoteName, "", PresenceAbsent)
		return "", PresenceAbsent, nil
	}

	inspector.logRemote(repositoryPath, remoteName, remoteURLs[0], PresencePresent)
	return remoteURLs[0], PresencePresent, nil
}

// BranchPresence reports whether refs/heads/<branchName> exists locally.
func (inspector *Inspector) BranchPresence(_ context.Context, repositoryPath string, branchName string) (Presence, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return PresenceUnknown, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	presence := PresencePresent
	_, referenceError := repository.Reference(plumbing.NewBranchReferenceName(branchName), false)
	switch {
	case errors.Is(referenceError, plumbing.ErrReferenceNotFound):
		presence = PresenceAbsent
	case referenceError != nil:
		return PresenceUnknown, fmt.Errorf(branchLookupErrorTemplateConstant, branchName, repositoryPath, referenceError)
	}

	inspector.logger.Debug(
		branchInspectedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchNameConstant, branchName),
		zap.Stringer(logFieldPresenceConstant, presence),
	)
	return presence, nil
}

func (inspector *Inspector) logRemote(repositoryPath string, remoteName string, remoteURL string, presence Presence) {
	inspector.logger.Debug(
		remoteInspectedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldRemoteNameConstant, remoteName),
		zap.String(logFieldRemoteURLConstant, remoteURL),
		zap.Stringer(logFieldPresenceConstant, presence),
	)
}
