package quizgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"civic-quiz/internal/config"
	"civic-quiz/internal/domain"
)

// fakeModel answers every prompt with a fixed reply, optionally in chunks.
type fakeModel struct {
	reply   string
	chunks  []string
	err     error
	prompts []string
	opts    llms.CallOptions
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, opt := range options {
		opt(&m.opts)
	}
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.opts.StreamingFunc != nil {
		for _, c := range m.chunks {
			if err := m.opts.StreamingFunc(ctx, []byte(c)); err != nil {
				return nil, err
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLLMQuizGenerator_GenerateRaw(t *testing.T) {
	model := &fakeModel{reply: "<think>plan the quiz</think>\n{\"topic\":\"Courts\",\"questions\":[]}"}
	g := NewLLMQuizGenerator(model, 0.3, time.Second, zap.NewNop())

	raw, err := g.GenerateRaw(context.Background(), domain.GenerationRequest{Topic: "Federal courts", NumQuestions: 3})

	require.NoError(t, err)
	assert.Equal(t, `{"topic":"Courts","questions":[]}`, raw)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], `Topic: "Federal courts"`)
	assert.Contains(t, model.prompts[0], "Number of questions: 3")
	assert.Contains(t, model.prompts[0], "Difficulty: medium")
	assert.InDelta(t, 0.3, model.opts.Temperature, 1e-9)
}

func TestLLMQuizGenerator_GenerateRawError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	g := NewLLMQuizGenerator(model, 0.3, 0, nil)

	_, err := g.GenerateRaw(context.Background(), domain.GenerationRequest{Topic: "Voting", NumQuestions: 1})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	assert.ErrorContains(t, err, "connection refused")
}

func TestLLMQuizGenerator_GenerateStream(t *testing.T) {
	chunks := []string{"<think>hmm", "</think>{\"topic\":", "\"Voting\",\"questions\":[]}"}
	model := &fakeModel{chunks: chunks, reply: "<think>hmm</think>{\"topic\":\"Voting\",\"questions\":[]}"}
	g := NewLLMQuizGenerator(model, 0.7, time.Second, zap.NewNop())

	var buffers []string
	raw, err := g.GenerateStream(context.Background(), domain.GenerationRequest{Topic: "Voting", NumQuestions: 2},
		func(buffer string) { buffers = append(buffers, buffer) })

	require.NoError(t, err)
	assert.Equal(t, `{"topic":"Voting","questions":[]}`, raw)
	assert.Equal(t, []string{
		"",
		`{"topic":`,
		`{"topic":"Voting","questions":[]}`,
	}, buffers)
	assert.NotNil(t, model.opts.StreamingFunc)
}

func TestStripThinking(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<think>a</think> {}", "{}"},
		{"<think>a</think>{}<think>b</think>[]", "{}[]"},
		{"{} <think>still going", "{}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripThinking(tt.in), tt.in)
	}
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})
	assert.ErrorContains(t, err, "API key")

	_, err = NewModel(config.LLMConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "unsupported llm provider")

	m, err := NewModel(config.LLMConfig{Provider: "ollama", Server: "http://localhost:11434", Model: "qwen3:0.6b", Timeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = NewModel(config.LLMConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini", Timeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, m)
}
