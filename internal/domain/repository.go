package domain

import "context"

// QuestionRepository persists questions accepted from generated content.
type QuestionRepository interface {
	// SaveQuestions stores every question of one batch atomically.
	SaveQuestions(ctx context.Context, questions []*StoredQuestion) error

	// GetQuestionsByBatch returns the questions of a batch in insertion order.
	GetQuestionsByBatch(ctx context.Context, batchID string) ([]*StoredQuestion, error)

	// GetQuestionByID returns nil, nil if the question does not exist.
	GetQuestionByID(ctx context.Context, id string) (*StoredQuestion, error)
}

// TransactionManager runs fn inside a transaction carried by the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
