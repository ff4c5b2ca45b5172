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

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (proficiency.Skill, error)
	FindByName(ctx context.Context, name string) (proficiency.Skill, error)
	List(ctx context.Context) ([]proficiency.Skill, error)
	Create(ctx context.Context, s proficiency.Skill) (proficiency.Skill, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (proficiency.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, active FROM skills WHERE id = $1`, id)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string) (proficiency.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, active FROM skills WHERE name = $1 LIMIT 1`, name)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]proficiency.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, active FROM skills WHERE active ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]proficiency.Skill, 0)
	for rows.Next() {
		var s proficiency.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s proficiency.Skill) (proficiency.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Active = true
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, active) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Category, s.Active)
	if err != nil {
		return proficiency.Skill{}, err
	}
	return s, nil
}

// Deactivate hides a skill from selection. Skills referenced by
// historical records are never deleted.
func (r *PostgresSkillRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `UPDATE skills SET active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func scanSkill(row database.Row) (proficiency.Skill, error) {
	var s proficiency.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Active); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return proficiency.Skill{}, ErrSkillNotFound
		}
		return proficiency.Skill{}, err
	}
	return s, nil
}
