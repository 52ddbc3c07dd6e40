package cli

import (
	"github.com/spf13/cobra"
)

type ReportOptions struct {
	SettingsFile string
	OutputDir    string
	NoNotify     bool
}

func NewReportCmd() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the per-chain statistics report for all configured chains",
		RunE: func(c *cobra.Command, args []string) error {
			return runReport(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsFile, "settings", "s", "configs/settings.json", "Path to settings file")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "mongo_reports", "Directory for report CSV files")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "Skip WeChat notification delivery")

	return cmd
}
