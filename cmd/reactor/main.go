package main

import (
	"os"

	// Import packages to ensure their init() functions are called for registration
	_ "github.com/arthur-debert/reactor/pkg/matchers"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
