package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civic-quiz/internal/domain"
	"civic-quiz/internal/repository/models"
	"civic-quiz/internal/util"
)

const selectQuestionColumns = `SELECT
	id "id",
	batch_id "batch_id",
	position "position",
	topic "topic",
	question_key "question_key",
	question "question",
	options "options",
	correct_answer "correct_answer",
	explanation "explanation",
	sources "sources",
	difficulty "difficulty",
	category "category",
	quality_score "quality_score",
	created_at "created_at"
FROM generated_questions`

const insertQuestionQuery = `INSERT INTO generated_questions (
	id, batch_id, position, topic, question_key, question, options,
	correct_answer, explanation, sources, difficulty, category,
	quality_score, created_at
) VALUES (
	:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14
)`

// QuestionDatabaseAdapter implements domain.QuestionRepository on Oracle.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
	tm domain.TransactionManager
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db, tm: NewTransactionManagerAdapter(db)}
}

// SaveQuestions inserts all questions or none.
func (a *QuestionDatabaseAdapter) SaveQuestions(ctx context.Context, questions []*domain.StoredQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]*models.GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		row, err := toModelQuestion(q)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return a.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, a.db)
		for _, row := range rows {
			_, err := exec.ExecContext(ctx, insertQuestionQuery,
				row.ID,
				row.BatchID,
				row.Position,
				row.Topic,
				row.QuestionKey,
				row.Question,
				row.Options,
				row.CorrectAnswer,
				row.Explanation,
				row.Sources,
				row.Difficulty,
				row.Category,
				row.QualityScore,
				row.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert question %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

func (a *QuestionDatabaseAdapter) GetQuestionsByBatch(ctx context.Context, batchID string) ([]*domain.StoredQuestion, error) {
	var rows []models.GeneratedQuestion
	query := selectQuestionColumns + ` WHERE batch_id = :1 ORDER BY position`
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, batchID); err != nil {
		return nil, fmt.Errorf("failed to get questions for batch %s: %w", batchID, err)
	}
	questions := make([]*domain.StoredQuestion, 0, len(rows))
	for i := range rows {
		q, err := toDomainQuestion(&rows[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.StoredQuestion, error) {
	var row models.GeneratedQuestion
	query := selectQuestionColumns + ` WHERE id = :1`
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&row)
}

func toModelQuestion(q *domain.StoredQuestion) (*models.GeneratedQuestion, error) {
	if q == nil {
		return nil, fmt.Errorf("cannot save nil question")
	}
	options, err := models.NewJSONColumn(q.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options of question %s: %w", q.StorageID, err)
	}
	sources, err := models.NewJSONColumn(q.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources of question %s: %w", q.StorageID, err)
	}
	row := &models.GeneratedQuestion{
		ID:            q.StorageID,
		BatchID:       q.BatchID,
		Position:      q.Position,
		Topic:         q.Topic,
		QuestionKey:   q.ID,
		Question:      q.Question,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Sources:       sources,
		Category:      util.StringToNullString(q.Category),
		QualityScore:  q.QualityScore,
		CreatedAt:     q.CreatedAt,
	}
	if q.Difficulty != 0 {
		row.Difficulty = sql.NullFloat64{Float64: q.Difficulty, Valid: true}
	}
	return row, nil
}

func toDomainQuestion(row *models.GeneratedQuestion) (*domain.StoredQuestion, error) {
	q := &domain.StoredQuestion{
		ExtractedQuestion: domain.ExtractedQuestion{
			ID:            row.QuestionKey,
			Question:      row.Question,
			CorrectAnswer: row.CorrectAnswer,
			Explanation:   row.Explanation,
			Difficulty:    row.Difficulty.Float64,
			Category:      row.Category.String,
		},
		StorageID:    row.ID,
		BatchID:      row.BatchID,
		Position:     row.Position,
		Topic:        row.Topic,
		QualityScore: row.QualityScore,
		CreatedAt:    row.CreatedAt,
	}
	if err := row.Options.Decode(&q.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options of question %s: %w", row.ID, err)
	}
	if err := row.Sources.Decode(&q.Sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources of question %s: %w", row.ID, err)
	}
	if len(q.Sources) == 0 {
		q.Sources = nil
	}
	return q, nil
}
