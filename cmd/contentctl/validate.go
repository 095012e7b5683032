package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"civic-quiz/internal/domain"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var streaming bool
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Score well-formed quiz JSON against the quality rubric",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var v interface{}
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return fmt.Errorf("input is not valid JSON, try parse instead: %w", err)
			}
			content, err := domain.DecodeQuizContent(v)
			if err != nil {
				return err
			}
			svc, err := opts.offlineService()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), svc.Validate(cmd.Context(), content, streaming))
		},
	}
	cmd.Flags().BoolVar(&streaming, "streaming", false, "apply the lenient rubric used for partial output")
	return cmd
}
