// show-possible-formats command.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s-boomi/nomad-stac-converter/internal/analysis"
)

var formatsCmd = &cobra.Command{
	Use:   "show-possible-formats",
	Short: "List the formats format-data-for-analysis can write",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FORMAT\tWRITABLE\tDESCRIPTION")
		for _, f := range analysis.Formats() {
			writable := "no"
			if f.Writable {
				writable = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, writable, f.Description)
		}
		return w.Flush()
	},
}
