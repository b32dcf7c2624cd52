// Package ui renders forkbranch's human-facing console output.
//
// CommandEchoObserver prints every external command before it runs, the console
// event logger narrates the same events through zap, and Styles degrades lipgloss
// styling to plain text when the destination is not a color terminal.
package ui
