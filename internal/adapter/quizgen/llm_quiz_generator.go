package quizgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"civic-quiz/internal/config"
	"civic-quiz/internal/domain"
)

const promptTemplate = `You are an expert civic educator writing a multiple-choice quiz.
Topic: %q
Difficulty: %s
Number of questions: %d

Respond with ONLY a JSON object in the following format:
{
  "topic": "short topic title",
  "description": "one sentence describing the quiz",
  "questions": [
    {
      "id": "q1",
      "question": "a specific question that names people, places, dates or amounts",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": "the exact text of the correct option",
      "explanation": "why the answer is correct and how it affects citizens",
      "sources": [{"url": "https://...", "title": "source title", "credibility_score": 0.9, "bias_rating": "center"}],
      "difficulty": 2,
      "category": "government"
    }
  ]
}

Rules:
1. Number the ids q1, q2, ... q%d.
2. Every question has exactly 4 options and correct_answer repeats one of them verbatim.
3. Explanations are at least two sentences and describe real-world impact.
4. Cite at least one reputable source per question.
5. Do not wrap the JSON in markdown or add any other text.`

// LLMQuizGenerator asks a langchaingo model for civic quiz JSON.
type LLMQuizGenerator struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewLLMQuizGenerator wraps a model. A zero timeout leaves the deadline to
// the caller's context.
func NewLLMQuizGenerator(model llms.Model, temperature float64, timeout time.Duration, logger *zap.Logger) *LLMQuizGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuizGenerator{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// NewModel builds the langchaingo backend named by cfg.Provider.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model), ollama.WithHTTPClient(httpClient)}
		if cfg.Server != "" {
			opts = append(opts, ollama.WithServerURL(cfg.Server))
		}
		return ollama.New(opts...)
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model), openai.WithHTTPClient(httpClient)}
		if cfg.Server != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Server))
		}
		return openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

func buildPrompt(req domain.GenerationRequest) string {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	return fmt.Sprintf(promptTemplate, req.Topic, difficulty, req.NumQuestions, req.NumQuestions)
}

// GenerateRaw returns the model's answer with any reasoning block removed.
func (g *LLMQuizGenerator) GenerateRaw(ctx context.Context, req domain.GenerationRequest) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	prompt := buildPrompt(req)
	g.logger.Debug("Requesting quiz from LLM", zap.String("topic", req.Topic), zap.Int("num_questions", req.NumQuestions))

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("LLM quiz generation failed", zap.Error(err), zap.String("topic", req.Topic))
		return "", domain.NewLLMServiceError(fmt.Errorf("generate quiz: %w", err))
	}
	cleaned := StripThinking(response)
	g.logger.Debug("LLM quiz response received", zap.Int("length", len(cleaned)))
	return cleaned, nil
}

// GenerateStream reports the growing buffer to onChunk after every chunk.
// Reasoning blocks are hidden from the buffer, including one still open.
func (g *LLMQuizGenerator) GenerateStream(ctx context.Context, req domain.GenerationRequest, onChunk func(buffer string)) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	var buf strings.Builder
	stream := func(_ context.Context, chunk []byte) error {
		buf.Write(chunk)
		if onChunk != nil {
			onChunk(StripThinking(buf.String()))
		}
		return nil
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, buildPrompt(req),
		llms.WithTemperature(g.temperature),
		llms.WithStreamingFunc(stream),
	)
	if err != nil {
		g.logger.Error("LLM quiz stream failed", zap.Error(err), zap.Int("received", buf.Len()))
		return "", domain.NewLLMServiceError(fmt.Errorf("stream quiz: %w", err))
	}
	if response == "" {
		response = buf.String()
	}
	return StripThinking(response), nil
}

func (g *LLMQuizGenerator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// StripThinking removes <think>...</think> blocks. An unterminated block
// hides everything after its opening tag.
func StripThinking(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start < 0 {
			return strings.TrimSpace(s)
		}
		end := strings.Index(s[start:], "</think>")
		if end < 0 {
			return strings.TrimSpace(s[:start])
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
}

var _ domain.QuizGenerationService = (*LLMQuizGenerator)(nil)
