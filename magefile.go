//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type (
	Test  mg.Namespace
	Build mg.Namespace
)

var Aliases = map[string]interface{}{
	"build": Build.Dev,
	"test":  Test.Unit,
}

// Unit runs the package tests.
func (Test) Unit() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-short", "./...")
}

// Integration runs the testscript scenarios, which drive real git against local repositories.
func (Test) Integration() error {
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-tags=integration", "-run", "TestScript", "-timeout=300s", ".")
}

// Coverage writes a coverage profile for the internal packages.
func (Test) Coverage() error {
	fmt.Println("Running unit tests with coverage...")
	if err := os.MkdirAll("coverage", 0o755); err != nil {
		return err
	}
	if err := sh.RunV("go", "test", "-short", "-coverprofile=coverage/coverage.out", "-coverpkg=./internal/...,./cmd/...", "-covermode=atomic", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage/coverage.out")
}

// Lint runs go vet over every package.
func Lint() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Dev builds the forkbranch binary for development.
func (Build) Dev() error {
	fmt.Println("Building forkbranch...")
	return sh.RunV("go", "build", "-o", "bin/forkbranch", ".")
}

// Release builds release binaries for common platforms.
func (Build) Release() error {
	fmt.Println("Building release binaries...")

	platforms := []struct {
		os   string
		arch string
	}{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
	}

	for _, platform := range platforms {
		output := fmt.Sprintf("bin/forkbranch-%s-%s", platform.os, platform.arch)
		if platform.os == "windows" {
			output += ".exe"
		}
		env := map[string]string{
			"GOOS":        platform.os,
			"GOARCH":      platform.arch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "-trimpath", "-ldflags=-s -w", "-o", output, "."); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build and coverage artifacts.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage")
}
