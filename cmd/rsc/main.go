// Package main provides the rsc command-line tool.
package main

import (
	"os"

	"github.com/prithivirajmurugan/rs-compiler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
