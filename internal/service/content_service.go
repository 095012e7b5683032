package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"civic-quiz/internal/config"
	"civic-quiz/internal/contentparse"
	"civic-quiz/internal/domain"
	"civic-quiz/internal/dto"
	"civic-quiz/internal/util"
)

// ContentService exposes the extraction pipeline and the generate, parse,
// validate and persist loop built on it.
type ContentService interface {
	Parse(ctx context.Context, raw string) (*dto.ParseResponse, error)
	ParseBatch(ctx context.Context, raws []string) ([]*dto.ParseResponse, error)
	ExtractStreaming(ctx context.Context, raw string) *dto.StreamResponse
	Validate(ctx context.Context, content *domain.QuizContent, streaming bool) domain.QualityReport
	Generate(ctx context.Context, req domain.GenerationRequest) (*dto.GenerateResponse, error)
	GenerateStream(ctx context.Context, req domain.GenerationRequest, onUpdate func(*dto.StreamResponse)) (*dto.GenerateResponse, error)
	GetBatch(ctx context.Context, batchID string) (*dto.BatchQuestionsResponse, error)
}

type contentService struct {
	parser    *contentparse.Parser
	validator *contentparse.Validator
	cache     *ParseCache
	generator domain.QuizGenerationService
	repo      domain.QuestionRepository
	cfg       config.GenerationConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewContentService wires the pipeline. generator and repo may be nil; the
// operations that need them then fail or skip persistence respectively.
func NewContentService(
	parser *contentparse.Parser,
	parseCache *ParseCache,
	generator domain.QuizGenerationService,
	repo domain.QuestionRepository,
	cfg config.GenerationConfig,
	logger *zap.Logger,
) ContentService {
	if parser == nil {
		parser = contentparse.NewParser(contentparse.WithLogger(logger))
	}
	if parseCache == nil {
		parseCache = NewParseCache(nil, 0, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contentService{
		parser:    parser,
		validator: contentparse.NewValidator(),
		cache:     parseCache,
		generator: generator,
		repo:      repo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Parse runs the repair chain and scores the content in final mode.
func (s *contentService) Parse(ctx context.Context, raw string) (*dto.ParseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, hit := s.cache.GetOrParse(ctx, raw, s.parser.Parse)
	resp := &dto.ParseResponse{Parsed: parsed, Cached: hit}
	if !parsed.IsValid {
		s.logger.Info("Content could not be parsed",
			zap.Int("length", len(raw)),
			zap.Strings("errors", parsed.Errors))
		return resp, nil
	}

	content, err := domain.DecodeQuizContent(parsed.Content)
	if err != nil {
		s.logger.Debug("Parsed content holds no quiz questions", zap.Error(err))
		return resp, nil
	}
	report := s.validator.Validate(content, false)
	resp.Quality = &report
	return resp, nil
}

// ParseBatch parses independent payloads concurrently. Results keep the
// order of raws.
func (s *contentService) ParseBatch(ctx context.Context, raws []string) ([]*dto.ParseResponse, error) {
	results := make([]*dto.ParseResponse, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.BatchConcurrency > 0 {
		g.SetLimit(s.cfg.BatchConcurrency)
	}
	for i, raw := range raws {
		g.Go(func() error {
			resp, err := s.Parse(gctx, raw)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ExtractStreaming returns the questions recoverable from a partial buffer
// and their lenient score.
func (s *contentService) ExtractStreaming(ctx context.Context, raw string) *dto.StreamResponse {
	partial := contentparse.ExtractPartial(raw)
	content := &domain.QuizContent{Questions: partial.ExtractedQuestions}
	return &dto.StreamResponse{
		Partial: partial,
		Quality: s.validator.Validate(content, true),
	}
}

func (s *contentService) Validate(ctx context.Context, content *domain.QuizContent, streaming bool) domain.QualityReport {
	return s.validator.Validate(content, streaming)
}

// candidate is one generated batch that passed parsing.
type candidate struct {
	parsed  domain.ParsedContent
	content *domain.QuizContent
	report  domain.QualityReport
}

// attemptError keeps the diagnostics of a rejected attempt.
type attemptError struct {
	code        domain.ErrorCode
	diagnostics []string
	score       int
}

func (e *attemptError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, strings.Join(e.diagnostics, "; "))
}

// evaluate parses and scores one model response.
func (s *contentService) evaluate(ctx context.Context, raw string) (*candidate, error) {
	resp, err := s.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	if !resp.Parsed.IsValid {
		return nil, &attemptError{code: domain.CodeUnparseableContent, diagnostics: resp.Parsed.Errors}
	}
	if resp.Quality == nil {
		return nil, &attemptError{
			code:        domain.CodeUnparseableContent,
			diagnostics: append(append([]string(nil), resp.Parsed.Errors...), "parsed content holds no quiz questions"),
		}
	}
	if !resp.Quality.IsValid || resp.Quality.QualityScore < s.cfg.MinQualityScore {
		return nil, &attemptError{
			code:        domain.CodeQualityShortfall,
			diagnostics: resp.Quality.Errors,
			score:       resp.Quality.QualityScore,
		}
	}
	content, _ := domain.DecodeQuizContent(resp.Parsed.Content)
	return &candidate{parsed: resp.Parsed, content: content, report: *resp.Quality}, nil
}

func (s *contentService) normalize(req domain.GenerationRequest) domain.GenerationRequest {
	if req.NumQuestions <= 0 {
		req.NumQuestions = s.cfg.QuestionsPerRequest
	}
	return req
}

func (s *contentService) retryOptions() []backoff.RetryOption {
	b := backoff.NewExponentialBackOff()
	if s.cfg.InitialBackoff > 0 {
		b.InitialInterval = s.cfg.InitialBackoff
	}
	if s.cfg.MaxBackoff > 0 {
		b.MaxInterval = s.cfg.MaxBackoff
	}
	maxAttempts := s.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("Generation attempt rejected, retrying",
				zap.Error(err),
				zap.Duration("retry_in", next))
		}),
	}
}

// Generate asks the model for questions until a batch parses and meets the
// quality bar, then persists its valid questions under one batch id.
func (s *contentService) Generate(ctx context.Context, req domain.GenerationRequest) (*dto.GenerateResponse, error) {
	if s.generator == nil {
		return nil, domain.NewInternalError("quiz generator is not configured", nil)
	}
	req = s.normalize(req)
	s.logger.Info("Generating quiz content",
		zap.String("topic", req.Topic),
		zap.Int("num_questions", req.NumQuestions))

	attempts := 0
	cand, err := backoff.Retry(ctx, func() (*candidate, error) {
		attempts++
		raw, err := s.generator.GenerateRaw(ctx, req)
		if err != nil {
			return nil, err
		}
		return s.evaluate(ctx, raw)
	}, s.retryOptions()...)
	if err != nil {
		return nil, s.exhausted(attempts, err)
	}
	return s.accept(ctx, req, cand, attempts)
}

// GenerateStream forwards partial extractions while the model is writing,
// then evaluates the complete output once. onUpdate fires only when the set
// of recoverable questions or the completeness flag changes.
func (s *contentService) GenerateStream(ctx context.Context, req domain.GenerationRequest, onUpdate func(*dto.StreamResponse)) (*dto.GenerateResponse, error) {
	if s.generator == nil {
		return nil, domain.NewInternalError("quiz generator is not configured", nil)
	}
	req = s.normalize(req)

	lastCount, lastComplete := -1, false
	raw, err := s.generator.GenerateStream(ctx, req, func(buffer string) {
		if onUpdate == nil {
			return
		}
		update := s.ExtractStreaming(ctx, buffer)
		count := len(update.Partial.ExtractedQuestions)
		if count == lastCount && update.Partial.IsComplete == lastComplete {
			return
		}
		lastCount, lastComplete = count, update.Partial.IsComplete
		onUpdate(update)
	})
	if err != nil {
		return nil, s.exhausted(1, err)
	}

	cand, err := s.evaluate(ctx, raw)
	if err != nil {
		return nil, s.exhausted(1, err)
	}
	return s.accept(ctx, req, cand, 1)
}

func (s *contentService) exhausted(attempts int, err error) error {
	var attemptErr *attemptError
	if errors.As(err, &attemptErr) {
		s.logger.Error("Generation attempts exhausted",
			zap.Int("attempts", attempts),
			zap.String("code", string(attemptErr.code)),
			zap.Strings("diagnostics", attemptErr.diagnostics))
		if attemptErr.code == domain.CodeQualityShortfall {
			return domain.NewQualityShortfallError(attempts, attemptErr.score, attemptErr.diagnostics)
		}
		return domain.NewUnparseableContentError(attempts, attemptErr.diagnostics)
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.NewLLMServiceError(err)
}

// accept finishes and stores the valid questions of an accepted batch.
func (s *contentService) accept(ctx context.Context, req domain.GenerationRequest, cand *candidate, attempts int) (*dto.GenerateResponse, error) {
	topic := cand.content.Topic
	if topic == "" {
		topic = req.Topic
	}
	batchID := util.NewULID()
	createdAt := s.now()

	stored := make([]*domain.StoredQuestion, 0, cand.report.ValidQuestions)
	for i, qr := range cand.report.Questions {
		if !qr.IsValid {
			continue
		}
		stored = append(stored, &domain.StoredQuestion{
			ExtractedQuestion: contentparse.FinishExplanation(cand.content.Questions[i]),
			StorageID:         util.NewULID(),
			BatchID:           batchID,
			Position:          len(stored),
			Topic:             topic,
			QualityScore:      qr.QualityScore,
			CreatedAt:         createdAt,
		})
	}

	if s.repo != nil {
		if err := s.repo.SaveQuestions(ctx, stored); err != nil {
			s.logger.Error("Failed to save generated questions",
				zap.String("batch_id", batchID),
				zap.Error(err))
			return nil, domain.NewInternalError("failed to save generated questions", err)
		}
	}

	s.logger.Info("Accepted generated quiz content",
		zap.String("batch_id", batchID),
		zap.String("topic", topic),
		zap.Int("attempts", attempts),
		zap.Int("questions", len(stored)),
		zap.Int("quality_score", cand.report.QualityScore),
		zap.String("strategy", cand.parsed.Strategy))

	return &dto.GenerateResponse{
		BatchID:   batchID,
		Topic:     topic,
		Attempts:  attempts,
		Strategy:  cand.parsed.Strategy,
		Repaired:  cand.parsed.Repaired,
		Quality:   cand.report,
		Questions: dto.NewQuestionResponses(stored),
	}, nil
}

// GetBatch returns the stored questions of a batch in order.
func (s *contentService) GetBatch(ctx context.Context, batchID string) (*dto.BatchQuestionsResponse, error) {
	if s.repo == nil {
		return nil, domain.NewInternalError("question repository is not configured", nil)
	}
	questions, err := s.repo.GetQuestionsByBatch(ctx, batchID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load batch", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("batch %s not found", batchID))
	}
	return &dto.BatchQuestionsResponse{
		BatchID:   batchID,
		Topic:     questions[0].Topic,
		Questions: dto.NewQuestionResponses(questions),
	}, nil
}
