// create-stac-catalog command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-boomi/nomad-stac-converter/internal/catalog"
	"github.com/s-boomi/nomad-stac-converter/internal/instrument"
	"github.com/s-boomi/nomad-stac-converter/internal/iofs"
	"github.com/s-boomi/nomad-stac-converter/internal/paths"
	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

var (
	createID          string
	createDescription string
	createBands       []string
	createClean       bool
	createInputDir    string
	createOutputDir   string
	createPublished   bool
)

var createCmd = &cobra.Command{
	Use:   "create-stac-catalog",
	Short: "Create a STAC catalog from the raw observation folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		bands, err := instrument.Bands(createBands)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUserError)
		}

		handler, err := newHandler(createInputDir, createOutputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}

		catalogType := stac.SelfContained
		if createPublished {
			catalogType = stac.AbsolutePublished
		}

		creator := catalog.New(createID, createDescription, bands, handler, log)
		if _, err := creator.Create(createClean, catalogType); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUserError)
		}

		fmt.Printf("Catalog %s written to %s\n", createID, handler.OutputDir)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createID, "id", "", "catalog ID (required)")
	createCmd.Flags().StringVarP(&createDescription, "desc", "d", "", "short catalog description (required)")
	createCmd.Flags().StringSliceVarP(&createBands, "bands", "b", nil, "NOMAD bands to include (so, lno, uvis)")
	createCmd.Flags().BoolVar(&createClean, "clean", false, "wipe a non-empty output folder before writing")
	createCmd.Flags().StringVarP(&createInputDir, "input-folder", "I", "", "folder holding the raw data")
	createCmd.Flags().StringVarP(&createOutputDir, "output-folder", "O", "", "folder to write the catalog to")
	createCmd.Flags().BoolVar(&createPublished, "absolute-published", false, "write absolute hrefs instead of a self-contained tree")

	createCmd.MarkFlagRequired("id")
	createCmd.MarkFlagRequired("desc")
	createCmd.MarkFlagRequired("bands")
}

// newHandler resolves the input and output folders and binds them.
func newHandler(inputFlag, outputFlag string) (*iofs.Handler, error) {
	inputDir, err := paths.ResolveInputDir(inputFlag, configInputDir)
	if err != nil {
		return nil, err
	}
	outputDir, err := paths.ResolveOutputDir(outputFlag, configOutputDir)
	if err != nil {
		return nil, err
	}
	return iofs.New(inputDir, outputDir)
}
