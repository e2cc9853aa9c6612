// Root command for the nomad-stac CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s-boomi/nomad-stac-converter/internal/paths"
)

// Version is the converter release version.
const Version = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configInputDir  string
	configOutputDir string
)

// log is the CLI-wide logger. The accessor/codec core never logs; only
// the driver layers do.
var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "nomad-stac",
	Short: "Convert NOMAD observation files into a STAC catalog",
	Long: `nomad-stac converts ExoMars TGO NOMAD observation deliveries into a
STAC catalog with instrument extension properties, and offers helpers
for downloading deliveries and merging them for analysis.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = newLogger(flagVerbose)

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configInputDir = cfg.GetString(cfgKeyInputDir)
		configOutputDir = cfg.GetString(cfgKeyOutputDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.nomad-stac)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds a console logger writing to stderr so generated
// output on stdout stays machine-readable.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
