//go:build mage

// Package main provides build targets for realty using Mage.
//
// Usage:
//
//	mage build    Compile the realty binary to bin/
//	mage test     Run all tests with the race detector
//	mage cover    Run tests and write coverage.out plus an HTML report
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
//	mage install  Install realty to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo        = "go"
	binaryName   = "realty"
	binaryDir    = "bin"
	cmdDir       = "./cmd/realty"
	versionVar   = "github.com/mesh-intelligence/realty/internal/cli.Version"
	coverProfile = "coverage.out"
	coverHTML    = "coverage.html"
)

// Build compiles the realty binary to bin/, stamping the version from
// `git describe` when available.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := version(); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test runs all tests with the race detector.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests with coverage and renders an HTML report.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-html="+coverProfile, "-o", coverHTML)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and coverage output.
func Clean() error {
	for _, p := range []string{binaryDir, coverProfile, coverHTML} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// version returns the tag-based version without its leading "v", or "" when
// git has no tags to describe.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}
