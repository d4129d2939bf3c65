// Package main provides the ddlplatform CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/ddlplatform/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
