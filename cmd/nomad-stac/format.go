// format-data-for-analysis command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-boomi/nomad-stac-converter/internal/analysis"
	"github.com/s-boomi/nomad-stac-converter/internal/iofs"
	"github.com/s-boomi/nomad-stac-converter/internal/paths"
)

var (
	formatName      string
	formatInputDir  string
	formatOutputDir string
)

var formatCmd = &cobra.Command{
	Use:   "format-data-for-analysis FILE",
	Short: "Merge the raw observation files into one analysis file",
	Long: `Concatenates the sparse observation files in the raw folder and writes
them as FILE in the analysis output folder, e.g.

  nomad-stac format-data-for-analysis lno_10_days.csv --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, err := paths.ResolveInputDir(formatInputDir, configInputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}
		outputDir, err := paths.ResolveOutputDir(formatOutputDir, configOutputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}
		handler, err := iofs.New(inputDir, outputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}

		exporter := analysis.New(handler, log)
		n, err := exporter.SaveToFormat(args[0], formatName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUserError)
		}

		fmt.Printf("Wrote %d observations to %s\n", n, args[0])
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatName, "format", "f", "", "output format (csv, sqlite, geojson)")
	formatCmd.Flags().StringVarP(&formatInputDir, "input-folder", "I", "", "folder holding the raw data")
	formatCmd.Flags().StringVarP(&formatOutputDir, "output-folder", "O", "", "folder to write the merged file to")

	formatCmd.MarkFlagRequired("format")
}
