package middleware

import (
	"github.com/gofiber/fiber/v2"

	"civic-quiz/internal/validation"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateBatchID rejects a :id path parameter that is not a ULID.
func (vm *ValidationMiddleware) ValidateBatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchID := c.Params("id")
		if errors := vm.validator.ValidateBatchID(batchID); len(errors) > 0 {
			return errors
		}
		c.Locals("validated_batch_id", batchID)
		return c.Next()
	}
}
