package main

import (
	"github.com/spf13/cobra"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Repair and parse raw model output, then score it",
		Long: `Runs the repair chain over raw model output and prints the parsed
content with its final-mode quality report as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.offlineService()
			if err != nil {
				return err
			}
			resp, err := svc.Parse(cmd.Context(), raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}
