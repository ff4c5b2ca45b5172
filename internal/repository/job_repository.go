package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-verify/internal/database"
	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// Job is the posting as the scoring engine sees it: free text plus the
// preference fields the job match scorer aligns against.
type Job struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Location      string
	JobType       string
	Industry      string
	RequiredYears float64
	SalaryMin     float64
	SalaryMax     float64
}

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type RequirementRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]proficiency.Requirement, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(location, ''), COALESCE(job_type, ''),
		        COALESCE(industry, ''), COALESCE(required_years, 0), COALESCE(salary_min, 0), COALESCE(salary_max, 0)
		 FROM jobs WHERE id = $1`, id)

	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.JobType,
		&j.Industry, &j.RequiredYears, &j.SalaryMin, &j.SalaryMax)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

func (r *PostgresRequirementRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]proficiency.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sr.job_id, sr.skill_id, s.name, sr.required_proficiency, sr.criticality, sr.mandatory
		 FROM skill_requirements sr
		 JOIN skills s ON s.id = sr.skill_id
		 WHERE sr.job_id = $1
		 ORDER BY s.name ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]proficiency.Requirement, 0)
	for rows.Next() {
		var req proficiency.Requirement
		if err := rows.Scan(&req.JobID, &req.SkillID, &req.SkillName, &req.Required, &req.Criticality, &req.Mandatory); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
