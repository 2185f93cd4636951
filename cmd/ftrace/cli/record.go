package cli

import (
	"github.com/spf13/cobra"

	"github.com/Greathoney/uftrace/internal/record"
)

var recordCmd = &cobra.Command{
	Use:   "record <command> [args...]",
	Short: "Run a program and record its function calls",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRecord(cmd, args, dataFile)
	},
}

func doRecord(cmd *cobra.Command, args []string, file string) error {
	return record.Run(record.Options{
		Exename:  args[0],
		Argv:     args[1:],
		LibPath:  libPath,
		Filter:   filter,
		NoTrace:  notrace,
		DataFile: file,
		Debug:    debugFlag,
		Out:      cmd.OutOrStdout(),
	})
}

func init() {
	recordCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(recordCmd)
}
