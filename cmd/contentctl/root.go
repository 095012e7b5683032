package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"civic-quiz/internal/config"
	"civic-quiz/internal/contentparse"
	"civic-quiz/internal/domain"
	"civic-quiz/internal/logger"
	"civic-quiz/internal/service"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "contentctl",
		Short:        "Parse, stream, validate and generate civic quiz content",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(config.LoggerConfig{Level: opts.logLevel, Env: "development", Output: "stderr"})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml or ./config/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(
		newParseCmd(opts),
		newStreamCmd(opts),
		newValidateCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadConfigFile(o.configPath)
	}
	return config.LoadConfig()
}

// offlineService builds a service with no cache, generator or repository.
func (o *rootOptions) offlineService() (service.ContentService, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return newService(cfg, nil), nil
}

func newService(cfg *config.Config, generator domain.QuizGenerationService) service.ContentService {
	l := logger.Get()
	parser := contentparse.NewParser(contentparse.WithLogger(l.Named("contentparse")))
	return service.NewContentService(parser, nil, generator, nil, cfg.Generation, l)
}

// readInput reads the file named by args[0], or stdin when it is "-" or absent.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
