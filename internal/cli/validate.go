package cli

import (
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	SettingsFile string
	OutputDir    string
	NoNotify     bool
}

func NewValidateCmd() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the target chain has today's data in every collection",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsFile, "settings", "s", "configs/settings.json", "Path to settings file")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "validation_reports", "Directory for validation result files")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "Skip WeChat notification delivery")

	return cmd
}
