// Package main provides the nomad-stac CLI: a converter that turns raw
// NOMAD observation files into a STAC catalog.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
