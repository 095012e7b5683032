package dto

import (
	"time"

	"civic-quiz/internal/domain"
)

// ParseRequest carries raw model output to run through the repair chain
// @Description Raw model output to parse
type ParseRequest struct {
	Raw string `json:"raw"`
}

// ParseResponse pairs a parse outcome with its quality report. Quality is
// nil when parsing failed or the content holds no recognizable questions.
// @Description Parse outcome and quality report
type ParseResponse struct {
	Parsed  domain.ParsedContent  `json:"parsed"`
	Quality *domain.QualityReport `json:"quality,omitempty"`
	Cached  bool                  `json:"cached"`
}

// BatchParseRequest holds several independent raw payloads
// @Description Raw model outputs to parse independently
type BatchParseRequest struct {
	Items []string `json:"items"`
}

// BatchParseResponse lists results in request order
type BatchParseResponse struct {
	Results []*ParseResponse `json:"results"`
}

// StreamRequest carries a possibly truncated buffer of model output
// @Description Partial model output received so far
type StreamRequest struct {
	Raw string `json:"raw"`
}

// StreamResponse is what a client can render while output is still arriving
// @Description Questions extracted from a partial buffer
type StreamResponse struct {
	Partial domain.StreamingParseResult `json:"partial"`
	Quality domain.QualityReport        `json:"quality"`
}

// ValidateRequest asks for a rubric report on already decoded content
// @Description Quiz content to score
type ValidateRequest struct {
	Content   *domain.QuizContent `json:"content"`
	Streaming bool                `json:"streaming"`
}

// GenerateRequest asks the model for a new batch of civic questions
// @Description Quiz generation parameters
type GenerateRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// GenerateResponse describes an accepted and persisted batch
// @Description Accepted batch of generated questions
type GenerateResponse struct {
	BatchID   string               `json:"batch_id"`
	Topic     string               `json:"topic"`
	Attempts  int                  `json:"attempts"`
	Strategy  string               `json:"strategy"`
	Repaired  bool                 `json:"repaired"`
	Quality   domain.QualityReport `json:"quality"`
	Questions []*QuestionResponse  `json:"questions"`
}

// QuestionResponse is a stored question as returned by the API
type QuestionResponse struct {
	ID            string                  `json:"id"`
	Key           string                  `json:"key"`
	Position      int                     `json:"position"`
	Question      string                  `json:"question"`
	Options       []domain.QuestionOption `json:"options"`
	CorrectAnswer string                  `json:"correct_answer"`
	Explanation   string                  `json:"explanation"`
	Sources       []domain.Source         `json:"sources,omitempty"`
	Difficulty    float64                 `json:"difficulty,omitempty"`
	Category      string                  `json:"category,omitempty"`
	QualityScore  int                     `json:"quality_score"`
	CreatedAt     time.Time               `json:"created_at"`
}

// BatchQuestionsResponse lists the stored questions of one batch
type BatchQuestionsResponse struct {
	BatchID   string              `json:"batch_id"`
	Topic     string              `json:"topic"`
	Questions []*QuestionResponse `json:"questions"`
}

// HealthResponse reports liveness of the API and its backing stores
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewQuestionResponse converts a stored question for the API.
func NewQuestionResponse(q *domain.StoredQuestion) *QuestionResponse {
	return &QuestionResponse{
		ID:            q.StorageID,
		Key:           q.ID,
		Position:      q.Position,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Sources:       q.Sources,
		Difficulty:    q.Difficulty,
		Category:      q.Category,
		QualityScore:  q.QualityScore,
		CreatedAt:     q.CreatedAt,
	}
}

// NewQuestionResponses converts a batch, preserving order.
func NewQuestionResponses(questions []*domain.StoredQuestion) []*QuestionResponse {
	out := make([]*QuestionResponse, 0, len(questions))
	for _, q := range questions {
		if q != nil {
			out = append(out, NewQuestionResponse(q))
		}
	}
	return out
}
