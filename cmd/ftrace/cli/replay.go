package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Greathoney/uftrace/internal/replay"
	"github.com/Greathoney/uftrace/internal/tracefile"
	"github.com/Greathoney/uftrace/internal/ui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <command>",
	Short: "Print the recorded function call graph",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doReplay(cmd, args[0], dataFile)
	},
}

func doReplay(cmd *cobra.Command, exename, file string) error {
	out := cmd.OutOrStdout()
	opts := replay.Options{
		Flat:  flatFlag,
		Color: ui.Enabled(colorMode, out),
	}
	err := replay.Replay(file, exename, opts, out)
	if errors.Is(err, tracefile.ErrNotFound) {
		return fmt.Errorf("Can't find %s file!\n"+
			"Was '%s' compiled with -pg flag and ran ftrace record?",
			file, exename)
	}
	return err
}

func init() {
	replayCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(replayCmd)
}
