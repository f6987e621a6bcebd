// Package main provides the entry point for the codedigest CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/codedigest/cmd/codedigest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
