package repository

import (
	"context"

	"skill-verify/internal/database"
	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

type ProficiencyRepository interface {
	FindBySubjectID(ctx context.Context, subjectID uuid.UUID) ([]proficiency.Record, error)
	FindBySubjectIDs(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]proficiency.Record, error)
	// Upsert replaces the current record for (subject, skill) and appends
	// the prior state to the audit log.
	Upsert(ctx context.Context, rec proficiency.Record) error
}

type PostgresProficiencyRepository struct {
	db database.DB
}

func NewPostgresProficiencyRepository(db database.DB) *PostgresProficiencyRepository {
	return &PostgresProficiencyRepository{db: db}
}

const proficiencySelect = `
SELECT pr.subject_id, pr.skill_id, s.name, pr.value, pr.status, pr.source, pr.recorded_at
FROM proficiency_records pr
JOIN skills s ON s.id = pr.skill_id`

func (r *PostgresProficiencyRepository) FindBySubjectID(ctx context.Context, subjectID uuid.UUID) ([]proficiency.Record, error) {
	rows, err := r.db.Query(ctx,
		proficiencySelect+` WHERE pr.subject_id = $1 ORDER BY s.name ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]proficiency.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) FindBySubjectIDs(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]proficiency.Record, error) {
	out := make(map[uuid.UUID][]proficiency.Record, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		proficiencySelect+` WHERE pr.subject_id = ANY($1)`, subjectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out[rec.SubjectID] = append(out[rec.SubjectID], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) Upsert(ctx context.Context, rec proficiency.Record) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Keep the audit trail before the current row changes.
	_, err = tx.Exec(ctx,
		`INSERT INTO proficiency_log (id, subject_id, skill_id, value, status, source, recorded_at)
		 SELECT $1, subject_id, skill_id, value, status, source, recorded_at
		 FROM proficiency_records WHERE subject_id = $2 AND skill_id = $3`,
		uuid.New(), rec.SubjectID, rec.SkillID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO proficiency_records (subject_id, skill_id, value, status, source, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (subject_id, skill_id) DO UPDATE SET
			value = EXCLUDED.value,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			recorded_at = EXCLUDED.recorded_at`,
		rec.SubjectID, rec.SkillID, rec.Value, rec.Status, rec.Source, rec.RecordedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanRecord(rows database.Rows) (proficiency.Record, error) {
	var rec proficiency.Record
	err := rows.Scan(&rec.SubjectID, &rec.SkillID, &rec.SkillName, &rec.Value, &rec.Status, &rec.Source, &rec.RecordedAt)
	return rec, err
}
