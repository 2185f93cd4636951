// Package cli implements the ftrace command-line interface using
// Cobra. Modes are subcommands; a bare target program runs live mode.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Greathoney/uftrace/internal/config"
	"github.com/Greathoney/uftrace/internal/log"
)

var (
	libPath   string
	filter    string
	notrace   string
	debugFlag bool
	dataFile  string
	flatFlag  bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "ftrace [record|replay|live|report] <command> [args...]",
	Short: "ftrace -- a function tracer",
	Long: `ftrace traces function calls of a program built with -pg. It records
entries and exits through libraries interposed by the dynamic loader,
then renders the recorded calls as an indented call graph.

Running without a mode records the program and replays the result
right away, leaving no data file behind.`,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Options{Debug: debugFlag})

		// Flags beat the config file and environment; only flags the
		// user left untouched pick up configured defaults.
		cfg, err := config.LoadGlobal()
		if err != nil {
			cfg = config.DefaultGlobal()
		}
		flags := cmd.Flags()
		if !flags.Changed("library-path") {
			libPath = cfg.LibraryPath
		}
		if !flags.Changed("file") {
			dataFile = cfg.DataFile
		}
		if !flags.Changed("flat") {
			flatFlag = cfg.Flat
		}
		if !flags.Changed("color") {
			colorMode = cfg.Color
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// A bare target means live mode.
		if len(args) == 0 {
			return cmd.Help()
		}
		return runLive(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&libPath, "library-path", "L", ".", "Load libraries from this PATH")
	pf.StringVarP(&filter, "filter", "F", "", "Only trace those FUNCs (\",\" or \":\" separated)")
	pf.StringVarP(&notrace, "notrace", "N", "", "Don't trace those FUNCs")
	pf.BoolVarP(&debugFlag, "debug", "d", false, "Print debug messages")
	pf.StringVarP(&dataFile, "file", "f", "ftrace.data", "Use this FILE instead of ftrace.data")
	pf.BoolVar(&flatFlag, "flat", false, "Use flat output format")
	pf.StringVar(&colorMode, "color", "auto", "Colorize the output: auto, on or off")

	// The target program keeps its own flags; stop parsing at the
	// first non-flag argument.
	rootCmd.Flags().SetInterspersed(false)
}
