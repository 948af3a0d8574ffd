//go:build mage

// Package main contains Mage build targets for pageforge developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "pageforge"
	cmdPkg  = "./cmd/pageforge"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test vets the module and runs the full test suite.
func Test() error {
	mg.Deps(Lint)
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet across all packages.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts and the local response cache.
func Clean() error {
	for _, dir := range []string{binDir, ".pageforge"} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
