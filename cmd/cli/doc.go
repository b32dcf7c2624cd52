// Package cli constructs the forkbranch command-line interface. It binds the four
// positional arguments to a workflow run, layers configuration from the embedded
// defaults, an optional file, FORKBRANCH_ environment variables and flags, and
// maps the outcome to a process exit status through Run.
package cli
