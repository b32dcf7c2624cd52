package main

import (
	"os"

	"github.com/temirov/forkbranch/cmd/cli"
)

// main executes the forkbranch command-line application.
func main() {
	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
