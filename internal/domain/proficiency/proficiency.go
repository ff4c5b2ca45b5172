package proficiency

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinValue = 0.0
	MaxValue = 10.0
)

type Status string

const (
	StatusMissing  Status = "missing"
	StatusClaimed  Status = "claimed"
	StatusVerified Status = "verified"
)

type Source string

const (
	SourceSelfReport Source = "self_report"
	SourceAssessment Source = "assessment"
)

type Skill struct {
	ID       uuid.UUID
	Name     string
	Category string
	Active   bool
}

// Record is the current proficiency of a subject for one skill. There is
// exactly one current record per (subject, skill) pair; assessment results
// overwrite it in place while prior attempts stay in the attempt log.
type Record struct {
	SubjectID  uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Value      float64
	Status     Status
	Source     Source
	RecordedAt time.Time
}

// Profile indexes a subject's current records by skill.
type Profile struct {
	records map[uuid.UUID]Record
}

func NewProfile(records []Record) Profile {
	m := make(map[uuid.UUID]Record, len(records))
	for _, r := range records {
		if r.SkillID == uuid.Nil {
			continue
		}
		cur, ok := m[r.SkillID]
		if !ok || r.RecordedAt.After(cur.RecordedAt) {
			m[r.SkillID] = r
		}
	}
	return Profile{records: m}
}

// Effective returns the current value and status for a skill, or
// (0, missing) when the subject has no record for it.
func (p Profile) Effective(skillID uuid.UUID) (float64, Status) {
	r, ok := p.records[skillID]
	if !ok {
		return 0, StatusMissing
	}
	return r.Value, r.Status
}

func (p Profile) SkillIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.records))
	for id := range p.records {
		out = append(out, id)
	}
	return out
}

func (p Profile) Len() int {
	return len(p.records)
}

// GapSeverity is the shortfall of have against required, floored at 0.
func GapSeverity(required, have float64) float64 {
	if have >= required {
		return 0
	}
	return required - have
}
