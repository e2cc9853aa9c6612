// download-from-file command.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/s-boomi/nomad-stac-converter/internal/download"
	"github.com/s-boomi/nomad-stac-converter/internal/iofs"
	"github.com/s-boomi/nomad-stac-converter/internal/paths"
)

var downloadOutputDir string

var downloadCmd = &cobra.Command{
	Use:   "download-from-file FILE",
	Short: "Download and unpack an observation archive into the raw folder",
	Long: `Downloads (or copies, for a local path) the archive FILE and unpacks it
into the raw data folder. The folder must be empty; one attempt is made,
with no retries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The archive lands in the raw-data folder, so the
		// --output-folder flag maps onto the handler's input side.
		inputDir, err := paths.ResolveInputDir(downloadOutputDir, configInputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}
		outputDir, err := paths.ResolveOutputDir("", configOutputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}
		handler, err := iofs.New(inputDir, outputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}

		empty, err := handler.IsInputEmpty()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}
		if !empty {
			fmt.Fprintln(os.Stderr, errors.Wrapf(iofs.ErrInputNotEmpty, "%s", handler.InputDir))
			os.Exit(exitUserError)
		}

		src, err := download.ParseSource(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUserError)
		}

		d := download.New(nil, log)
		if _, err := d.FetchInto(src, handler.InputDir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Data unpacked into %s\n", handler.InputDir)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&downloadOutputDir, "output-folder", "", "folder to put the downloaded data in")
}
