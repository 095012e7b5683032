package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"civic-quiz/internal/domain"
	"civic-quiz/internal/dto"
	"civic-quiz/internal/util"
)

const (
	MaxRawBytes      = 1 << 20
	MaxTopicLength   = 200
	MaxQuestionCount = 20
	MaxBatchItems    = 20
)

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRaw checks a raw model output field.
func (v *Validator) ValidateRaw(field, raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(raw) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if len(raw) > MaxRawBytes {
		errors = append(errors, domain.NewOutOfRangeError(field, len(raw), 1, MaxRawBytes))
	}
	return errors
}

func (v *Validator) ValidateParseRequest(req *dto.ParseRequest) domain.ValidationErrors {
	return v.ValidateRaw("raw", req.Raw)
}

func (v *Validator) ValidateStreamRequest(req *dto.StreamRequest) domain.ValidationErrors {
	// An empty buffer is a valid stream state.
	if len(req.Raw) > MaxRawBytes {
		return domain.ValidationErrors{domain.NewOutOfRangeError("raw", len(req.Raw), 0, MaxRawBytes)}
	}
	return nil
}

// ValidateBatchParseRequest validates the item count and every item.
func (v *Validator) ValidateBatchParseRequest(req *dto.BatchParseRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(req.Items) == 0 || len(req.Items) > MaxBatchItems {
		errors = append(errors, domain.NewOutOfRangeError("items", len(req.Items), 1, MaxBatchItems))
		return errors
	}
	for i, raw := range req.Items {
		errors = append(errors, v.ValidateRaw(itemField(i), raw)...)
	}
	return errors
}

func (v *Validator) ValidateValidateRequest(req *dto.ValidateRequest) domain.ValidationErrors {
	if req.Content == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("content")}
	}
	return nil
}

// ValidateGenerateRequest checks topic, question count and difficulty.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(topic); n > MaxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, MaxTopicLength))
	}

	if req.NumQuestions < 1 || req.NumQuestions > MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", req.NumQuestions, 1, MaxQuestionCount))
	}

	if d := strings.ToLower(strings.TrimSpace(req.Difficulty)); d != "" && !difficulties[d] {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errors
}

// ValidateBatchID checks that a batch id is a ULID.
func (v *Validator) ValidateBatchID(batchID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(batchID) == "" {
		errors = append(errors, domain.NewMissingFieldError("batch_id"))
	} else if !util.IsValidULID(batchID) {
		errors = append(errors, domain.NewInvalidFormatError("batch_id", batchID))
	}
	return errors
}

func itemField(i int) string {
	return "items[" + strconv.Itoa(i) + "]"
}
