// Package gitrepo contains the git building blocks of the fork workflow.
//
// RepositoryManager mutates repositories through the git CLI, Inspector reads
// remotes and branches in-process through go-git, and the RemoteURL helpers build
// and compare ssh and https remote addresses.
package gitrepo
