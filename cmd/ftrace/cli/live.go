package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Greathoney/uftrace/internal/log"
)

var liveCmd = &cobra.Command{
	Use:   "live <command> [args...]",
	Short: "Record a program and replay the result right away",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLive,
}

// runLive records into a throwaway file and replays it. Recording into
// a non-default path means no backup is taken and the child learns the
// path from its environment.
func runLive(cmd *cobra.Command, args []string) error {
	tmp, err := os.CreateTemp("", "ftrace-live-*")
	if err != nil {
		return fmt.Errorf("live command cannot be run: %w", err)
	}
	file := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(file); err != nil {
			log.Debug("removing live trace file", "file", file, "error", err)
		}
	}()

	if err := doRecord(cmd, args, file); err != nil {
		return err
	}
	return doReplay(cmd, args[0], file)
}

func init() {
	liveCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(liveCmd)
}
