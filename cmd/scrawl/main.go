// Package main provides the scrawl text-to-diagram CLI.
package main

import (
	"os"

	"github.com/scrawl-labs/scrawl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
