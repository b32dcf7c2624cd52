// Package githubapi calls the GitHub REST API through an external HTTP client.
//
// Requests are issued via execshell so they share command echoing, logging and
// error classification with git, and so tests can substitute a recording executor.
package githubapi
