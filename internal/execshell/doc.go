// Package execshell runs the external tools forkbranch orchestrates.
//
// ShellExecutor is the only place commands are started. It notifies observers
// before and after each command, logs through zap and turns non-zero exits into
// CommandFailedError values. OSCommandRunner performs the actual os/exec call and
// ToolLocator verifies executables exist before they are required.
package execshell
