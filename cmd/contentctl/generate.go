package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"civic-quiz/internal/adapter/quizgen"
	"civic-quiz/internal/domain"
	"civic-quiz/internal/dto"
	"civic-quiz/internal/logger"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		req    domain.GenerationRequest
		stream bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the configured model for questions and print the accepted batch",
		Long: `Runs the generate, parse and validate loop against the configured LLM.
The result is printed and not stored. With --stream, partial extractions
are written to stderr while the model is writing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Topic == "" {
				return errors.New("--topic is required")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			model, err := quizgen.NewModel(cfg.LLM)
			if err != nil {
				return fmt.Errorf("failed to build LLM client: %w", err)
			}
			l := logger.Get()
			generator := quizgen.NewLLMQuizGenerator(model, cfg.LLM.Temperature, cfg.LLM.Timeout, l.Named("quizgen"))
			svc := newService(cfg, generator)

			var resp *dto.GenerateResponse
			if stream {
				errOut := cmd.ErrOrStderr()
				resp, err = svc.GenerateStream(cmd.Context(), req, func(update *dto.StreamResponse) {
					fmt.Fprintf(errOut, "... %d question(s) so far, complete=%t\n",
						len(update.Partial.ExtractedQuestions), update.Partial.IsComplete)
				})
			} else {
				resp, err = svc.Generate(cmd.Context(), req)
			}
			if err != nil {
				l.Debug("Generation failed", zap.Error(err))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&req.Topic, "topic", "", "quiz topic")
	cmd.Flags().IntVar(&req.NumQuestions, "count", 0, "number of questions (default from config)")
	cmd.Flags().StringVar(&req.Difficulty, "difficulty", "", "easy, medium or hard")
	cmd.Flags().BoolVar(&stream, "stream", false, "print partial extractions while the model writes")
	return cmd
}
