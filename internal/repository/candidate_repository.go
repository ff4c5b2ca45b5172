package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-verify/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// Candidate holds the profile fields consumed by the job match scorer.
// Identity and credentials live with the external identity collaborator.
type Candidate struct {
	SubjectID       uuid.UUID
	ProfileText     string
	Location        string
	JobType         string
	Industry        string
	ExperienceYears float64
	ExpectedSalary  float64
}

type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	SubjectID uuid.UUID
	AppliedAt time.Time
}

type CandidateRepository interface {
	FindBySubjectID(ctx context.Context, subjectID uuid.UUID) (Candidate, error)
}

type ApplicationRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]Application, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindBySubjectID(ctx context.Context, subjectID uuid.UUID) (Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT subject_id, COALESCE(profile_text, ''), COALESCE(location, ''), COALESCE(job_type, ''),
		        COALESCE(industry, ''), COALESCE(experience_years, 0), COALESCE(expected_salary, 0)
		 FROM candidate_profiles WHERE subject_id = $1`, subjectID)

	var c Candidate
	err := row.Scan(&c.SubjectID, &c.ProfileText, &c.Location, &c.JobType,
		&c.Industry, &c.ExperienceYears, &c.ExpectedSalary)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			// A subject without a saved profile still gets scored; the
			// formulas degrade on the empty fields.
			return Candidate{SubjectID: subjectID}, nil
		}
		return Candidate{}, err
	}
	return c, nil
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, subject_id, applied_at
		 FROM applications WHERE job_id = $1
		 ORDER BY applied_at ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.SubjectID, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
