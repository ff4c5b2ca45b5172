package repository

import (
	"context"
	"encoding/json"

	"skill-verify/internal/assessment"
	"skill-verify/internal/database"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]assessment.Question, error)
	Create(ctx context.Context, q assessment.Question) error
	IncrementUsage(ctx context.Context, ids []uuid.UUID) error
	IncrementCorrect(ctx context.Context, ids []uuid.UUID) error
}

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]assessment.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, skill_id, text, options, correct_text, difficulty, points, usage_count, correct_count
		 FROM question_bank WHERE skill_id = $1`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Question, 0)
	for rows.Next() {
		var q assessment.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.SkillID, &q.Text, &options, &q.CorrectText,
			&q.Difficulty, &q.Points, &q.UsageCount, &q.CorrectCount); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresQuestionRepository) Create(ctx context.Context, q assessment.Question) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Points <= 0 {
		q.Points = assessment.PointsFor(q.Difficulty)
	}
	options, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO question_bank (id, skill_id, text, options, correct_text, difficulty, points)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.SkillID, q.Text, options, q.CorrectText, q.Difficulty, q.Points)
	return err
}

func (r *PostgresQuestionRepository) IncrementUsage(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE question_bank SET usage_count = usage_count + 1 WHERE id = ANY($1)`, ids)
	return err
}

func (r *PostgresQuestionRepository) IncrementCorrect(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE question_bank SET correct_count = correct_count + 1 WHERE id = ANY($1)`, ids)
	return err
}
