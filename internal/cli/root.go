package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tuzhan-data",
		Short: "Daily MongoDB data checks for chain stores",
		Long: `tuzhan-data is a CLI tool that verifies chain transactional data is
landing in MongoDB on schedule. It validates that the target chain has
today's records in every configured collection, generates per-chain
statistics reports, and delivers summaries to a WeChat work group.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewValidateCmd(), NewReportCmd())

	return rootCmd
}
