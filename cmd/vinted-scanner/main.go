// Package main is the entry point for the vinted-scanner.
package main

import (
	"os"

	"github.com/cam71101/vinted-scanner/cmd/vinted-scanner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
