package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"civic-quiz/internal/domain"
	"civic-quiz/internal/dto"
	"civic-quiz/internal/logger"
	"civic-quiz/internal/service"
	"civic-quiz/internal/validation"
)

// ContentHandler serves the extraction pipeline over HTTP
type ContentHandler struct {
	service   service.ContentService
	validator *validation.Validator
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// RegisterRoutes mounts the content routes on the given router.
func (h *ContentHandler) RegisterRoutes(router fiber.Router, batchIDValidator fiber.Handler) {
	group := router.Group("/content")
	group.Post("/parse", h.Parse)
	group.Post("/parse/batch", h.ParseBatch)
	group.Post("/stream", h.ExtractStreaming)
	group.Post("/validate", h.Validate)
	group.Post("/generate", h.Generate)
	group.Get("/batches/:id", batchIDValidator, h.GetBatch)
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Debug("Failed to parse request body", zap.Error(err), zap.String("path", c.Path()))
		return domain.NewInvalidInputError("Invalid request body")
	}
	return nil
}

// Parse godoc
// @Summary Parse model output
// @Description Runs raw model output through the progressive repair chain and scores the result
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Raw model output"
// @Success 200 {object} dto.ParseResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /content/parse [post]
func (h *ContentHandler) Parse(c *fiber.Ctx) error {
	var req dto.ParseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if errs := h.validator.ValidateParseRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Parse(c.UserContext(), req.Raw)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ParseBatch godoc
// @Summary Parse several model outputs
// @Description Parses up to 20 independent payloads concurrently; results keep request order
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.BatchParseRequest true "Raw model outputs"
// @Success 200 {object} dto.BatchParseResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /content/parse/batch [post]
func (h *ContentHandler) ParseBatch(c *fiber.Ctx) error {
	var req dto.BatchParseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if errs := h.validator.ValidateBatchParseRequest(&req); len(errs) > 0 {
		return errs
	}

	results, err := h.service.ParseBatch(c.UserContext(), req.Items)
	if err != nil {
		return err
	}
	return c.JSON(dto.BatchParseResponse{Results: results})
}

// ExtractStreaming godoc
// @Summary Extract questions from a partial buffer
// @Description Returns the complete questions recoverable from output that is still arriving
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.StreamRequest true "Buffer received so far"
// @Success 200 {object} dto.StreamResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /content/stream [post]
func (h *ContentHandler) ExtractStreaming(c *fiber.Ctx) error {
	var req dto.StreamRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if errs := h.validator.ValidateStreamRequest(&req); len(errs) > 0 {
		return errs
	}
	return c.JSON(h.service.ExtractStreaming(c.UserContext(), req.Raw))
}

// Validate godoc
// @Summary Score quiz content
// @Description Applies the quality rubric in final or streaming mode
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.ValidateRequest true "Content to score"
// @Success 200 {object} domain.QualityReport
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /content/validate [post]
func (h *ContentHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if errs := h.validator.ValidateValidateRequest(&req); len(errs) > 0 {
		return errs
	}
	return c.JSON(h.service.Validate(c.UserContext(), req.Content, req.Streaming))
}

// Generate godoc
// @Summary Generate and store civic questions
// @Description Asks the configured model for questions, retrying until a batch parses and meets the quality bar
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation parameters"
// @Success 201 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /content/generate [post]
func (h *ContentHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Generate(c.UserContext(), domain.GenerationRequest{
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetBatch godoc
// @Summary Get a stored batch
// @Description Returns the accepted questions of one generation batch in order
// @Tags content
// @Produce json
// @Param id path string true "Batch ULID"
// @Success 200 {object} dto.BatchQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /content/batches/{id} [get]
func (h *ContentHandler) GetBatch(c *fiber.Ctx) error {
	resp, err := h.service.GetBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
