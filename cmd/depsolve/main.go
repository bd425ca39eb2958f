// Package main is the entry point for the depsolve CLI.
package main

import (
	"os"

	"github.com/depsolve-labs/depsolve/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
