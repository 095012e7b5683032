package domain

import (
	"strings"
	"time"
)

// QuestionOption is one selectable answer of a multiple-choice question.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Source is a citation attached to a generated question.
type Source struct {
	URL              string  `json:"url"`
	Title            string  `json:"title,omitempty"`
	CredibilityScore float64 `json:"credibility_score,omitempty"`
	BiasRating       string  `json:"bias_rating,omitempty"`
}

// ExtractedQuestion is a single quiz question recovered from model output.
// Options should hold exactly four entries once fully validated; earlier
// stages tolerate any count.
type ExtractedQuestion struct {
	ID            string           `json:"id"`
	Question      string           `json:"question"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Sources       []Source         `json:"sources,omitempty"`
	Difficulty    float64          `json:"difficulty,omitempty"`
	Category      string           `json:"category,omitempty"`
}

// ResolveCorrectOption returns the option the correct answer refers to.
// Labels are compared exactly, then case-insensitively, and finally the
// answer is tried as a raw option id.
func (q *ExtractedQuestion) ResolveCorrectOption() (QuestionOption, bool) {
	answer := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" {
		return QuestionOption{}, false
	}
	for _, opt := range q.Options {
		if opt.Label == answer {
			return opt, true
		}
	}
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt.Label), answer) {
			return opt, true
		}
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt.ID, answer) {
			return opt, true
		}
	}
	return QuestionOption{}, false
}

// QuizContent is the decoded shape of a generated quiz payload.
type QuizContent struct {
	Topic       string                 `json:"topic"`
	Description string                 `json:"description,omitempty"`
	Questions   []ExtractedQuestion    `json:"questions"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ParseAttempt records the outcome of one repair strategy.
type ParseAttempt struct {
	Strategy    string      `json:"strategy"`
	Succeeded   bool        `json:"succeeded"`
	Value       interface{} `json:"-"`
	Diagnostics []string    `json:"diagnostics,omitempty"`
}

// ParsedContent is the result of running the progressive repair chain.
// Content is nil whenever IsValid is false.
type ParsedContent struct {
	IsValid  bool           `json:"is_valid"`
	Content  interface{}    `json:"content"`
	Errors   []string       `json:"errors"`
	Repaired bool           `json:"repaired"`
	Strategy string         `json:"strategy,omitempty"`
	Attempts []ParseAttempt `json:"attempts,omitempty"`
}

// StreamingParseResult is what can be shown while model output is still arriving.
type StreamingParseResult struct {
	ExtractedQuestions []ExtractedQuestion `json:"extracted_questions"`
	IsComplete         bool                `json:"is_complete"`
	ParseErrors        []string            `json:"parse_errors"`
}

// QuestionReport is the rubric outcome for one question.
type QuestionReport struct {
	Index        int      `json:"index"`
	QuestionID   string   `json:"question_id,omitempty"`
	IsValid      bool     `json:"is_valid"`
	Promoted     bool     `json:"promoted,omitempty"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	QualityScore int      `json:"quality_score"`
}

// QualityReport aggregates rubric outcomes for a batch of questions.
type QualityReport struct {
	IsValid        bool             `json:"is_valid"`
	Errors         []string         `json:"errors"`
	Warnings       []string         `json:"warnings"`
	QualityScore   int              `json:"quality_score"`
	ValidQuestions int              `json:"valid_questions"`
	TotalQuestions int              `json:"total_questions"`
	Questions      []QuestionReport `json:"questions,omitempty"`
}

// GenerationRequest describes a quiz to ask the model for.
type GenerationRequest struct {
	Topic        string
	NumQuestions int
	Difficulty   string
}

// StoredQuestion is an accepted question as persisted.
type StoredQuestion struct {
	ExtractedQuestion
	StorageID    string
	BatchID      string
	Position     int
	Topic        string
	QualityScore int
	CreatedAt    time.Time
}
