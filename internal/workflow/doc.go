// Package workflow implements the fork-and-branch sequence.
//
// Service runs the stages in a fixed order: ensure the fork exists, pick or clone
// the checkout, register the upstream remote, synchronize the primary branch of a
// pre-existing fork, then create or reuse the working branch and push it. Every
// external effect goes through the interfaces in dependencies.go.
package workflow
