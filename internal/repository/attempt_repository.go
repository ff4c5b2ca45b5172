package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-verify/internal/assessment"
	"skill-verify/internal/database"
	"skill-verify/internal/domain/ranking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *assessment.Attempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*assessment.Attempt, error)
	SaveAnswer(ctx context.Context, attemptID, questionID uuid.UUID, answer string, at time.Time) error
	MarkCompleted(ctx context.Context, a *assessment.Attempt) error
	FindCompletedBySubjects(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]ranking.AttemptStat, error)
}

type PostgresAttemptRepository struct {
	db database.DB
}

func NewPostgresAttemptRepository(db database.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

func (r *PostgresAttemptRepository) Create(ctx context.Context, a *assessment.Attempt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO assessment_attempts
			(id, subject_id, skill_id, shuffle_seed, status, raw_score, max_score, percentage, proficiency_level, passed, started_at)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, 0, 0, false, $7)`,
		a.ID, a.SubjectID, a.SkillID, int64(a.ShuffleSeed), a.Status, a.MaxScore, a.StartedAt)
	if err != nil {
		return err
	}

	for i, qid := range a.QuestionIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO attempt_questions (attempt_id, question_id, position) VALUES ($1, $2, $3)`,
			a.ID, qid, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*assessment.Attempt, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, subject_id, skill_id, shuffle_seed, status, raw_score, max_score,
		        percentage, proficiency_level, passed, started_at, completed_at
		 FROM assessment_attempts WHERE id = $1`, id)

	var a assessment.Attempt
	var seed int64
	var completedAt sql.NullTime
	err := row.Scan(&a.ID, &a.SubjectID, &a.SkillID, &seed, &a.Status, &a.RawScore, &a.MaxScore,
		&a.Percentage, &a.ProficiencyLevel, &a.Passed, &a.StartedAt, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, assessment.ErrAttemptNotFound
		}
		return nil, err
	}
	a.ShuffleSeed = uint64(seed)
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}

	if err := r.loadQuestions(ctx, &a); err != nil {
		return nil, err
	}
	if err := r.loadAnswers(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAttemptRepository) loadQuestions(ctx context.Context, a *assessment.Attempt) error {
	rows, err := r.db.Query(ctx,
		`SELECT question_id FROM attempt_questions WHERE attempt_id = $1 ORDER BY position ASC`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	a.QuestionIDs = a.QuestionIDs[:0]
	for rows.Next() {
		var qid uuid.UUID
		if err := rows.Scan(&qid); err != nil {
			return err
		}
		a.QuestionIDs = append(a.QuestionIDs, qid)
	}
	return rows.Err()
}

func (r *PostgresAttemptRepository) loadAnswers(ctx context.Context, a *assessment.Attempt) error {
	rows, err := r.db.Query(ctx,
		`SELECT question_id, answer_text FROM attempt_answers WHERE attempt_id = $1`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	a.Answers = make(map[uuid.UUID]string)
	for rows.Next() {
		var qid uuid.UUID
		var answer string
		if err := rows.Scan(&qid, &answer); err != nil {
			return err
		}
		a.Answers[qid] = answer
	}
	return rows.Err()
}

// SaveAnswer upserts the answer row, but only while the parent attempt is
// still in progress. The status guard runs in the same statement as the
// write, so an answer racing a concurrent completion cannot land on a
// completed attempt; zero affected rows surfaces as ErrStaleAttempt.
func (r *PostgresAttemptRepository) SaveAnswer(ctx context.Context, attemptID, questionID uuid.UUID, answer string, at time.Time) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO attempt_answers (attempt_id, question_id, answer_text, answered_at)
		 SELECT $1, $2, $3, $4
		 WHERE EXISTS (
			SELECT 1 FROM assessment_attempts WHERE id = $1 AND status = $5
		 )
		 ON CONFLICT (attempt_id, question_id) DO UPDATE SET
			answer_text = EXCLUDED.answer_text,
			answered_at = EXCLUDED.answered_at`,
		attemptID, questionID, answer, at, assessment.StatusInProgress)
	if err != nil {
		return err
	}
	if affected == 0 {
		return assessment.ErrStaleAttempt
	}
	return nil
}

// MarkCompleted persists the scored terminal state. The status guard in
// the WHERE clause makes the transition check-and-set: a concurrent
// completion of the same attempt affects zero rows and surfaces as
// ErrStaleAttempt.
func (r *PostgresAttemptRepository) MarkCompleted(ctx context.Context, a *assessment.Attempt) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE assessment_attempts SET
			status = $1, raw_score = $2, percentage = $3, proficiency_level = $4,
			passed = $5, completed_at = $6
		 WHERE id = $7 AND status = $8`,
		a.Status, a.RawScore, a.Percentage, a.ProficiencyLevel,
		a.Passed, a.CompletedAt, a.ID, assessment.StatusInProgress)
	if err != nil {
		return err
	}
	if affected == 0 {
		return assessment.ErrStaleAttempt
	}
	return nil
}

func (r *PostgresAttemptRepository) FindCompletedBySubjects(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]ranking.AttemptStat, error) {
	out := make(map[uuid.UUID][]ranking.AttemptStat, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT subject_id, skill_id, percentage, passed, started_at
		 FROM assessment_attempts
		 WHERE subject_id = ANY($1) AND status = $2`,
		subjectIDs, assessment.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var subjectID uuid.UUID
		var stat ranking.AttemptStat
		if err := rows.Scan(&subjectID, &stat.SkillID, &stat.Percentage, &stat.Passed, &stat.StartedAt); err != nil {
			return nil, err
		}
		out[subjectID] = append(out[subjectID], stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
