//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the cube with config.toml.
func (Run) App() error {
	mg.Deps(Build.App)
	fmt.Println("Run cube...")
	if _, err := executeCmd("bin/anima-cube", withArgs("-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
