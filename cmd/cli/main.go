// Package main is the entry point for the ingredient-pricing CLI.
package main

import (
	"os"

	"ingredient-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
