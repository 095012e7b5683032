package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

// streamStep summarises the extraction at one replayed prefix.
type streamStep struct {
	Offset       int      `json:"offset"`
	Questions    int      `json:"questions"`
	IsComplete   bool     `json:"is_complete"`
	QualityScore int      `json:"quality_score"`
	ParseErrors  []string `json:"parse_errors,omitempty"`
}

func newStreamCmd(opts *rootOptions) *cobra.Command {
	var chunk int
	cmd := &cobra.Command{
		Use:   "stream [file|-]",
		Short: "Replay output in growing prefixes through the streaming extractor",
		Long: `Feeds the input to the streaming extractor in prefixes that grow by
--chunk bytes and prints one JSON line per prefix, as a client would see
the output while the model is still writing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk <= 0 {
				return errors.New("--chunk must be positive")
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.offlineService()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for end := 0; end < len(raw); {
				end += chunk
				if end > len(raw) {
					end = len(raw)
				}
				resp := svc.ExtractStreaming(cmd.Context(), raw[:end])
				step := streamStep{
					Offset:       end,
					Questions:    len(resp.Partial.ExtractedQuestions),
					IsComplete:   resp.Partial.IsComplete,
					QualityScore: resp.Quality.QualityScore,
					ParseErrors:  resp.Partial.ParseErrors,
				}
				if err := enc.Encode(step); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&chunk, "chunk", 64, "bytes added to the buffer per step")
	return cmd
}
