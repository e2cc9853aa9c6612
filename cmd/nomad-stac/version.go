// version command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/s-boomi/nomad-stac-converter"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nomad-stac version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "nomad-stac v%s\nmodule: %s\n", Version, modulePath)
		return nil
	},
}
