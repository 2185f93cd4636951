package cli

import (
	"github.com/spf13/cobra"

	"github.com/Greathoney/uftrace/internal/report"
	"github.com/Greathoney/uftrace/internal/tracefile"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print statistics from the recorded trace (not implemented yet)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := tracefile.Open(dataFile)
		if err != nil {
			return err
		}
		defer r.Close()
		return report.Run(r, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
