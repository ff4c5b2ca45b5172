package proficiency

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProfile_EffectiveMissing(t *testing.T) {
	p := NewProfile(nil)
	value, status := p.Effective(uuid.New())
	if value != 0 || status != StatusMissing {
		t.Fatalf("expected (0, missing), got (%v, %s)", value, status)
	}
}

func TestProfile_EffectiveKeepsMostRecent(t *testing.T) {
	subject := uuid.New()
	skill := uuid.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	p := NewProfile([]Record{
		{SubjectID: subject, SkillID: skill, Value: 4, Status: StatusClaimed, RecordedAt: base},
		{SubjectID: subject, SkillID: skill, Value: 7, Status: StatusVerified, RecordedAt: base.Add(time.Hour)},
	})

	value, status := p.Effective(skill)
	if value != 7 || status != StatusVerified {
		t.Fatalf("expected latest record (7, verified), got (%v, %s)", value, status)
	}
	if p.Len() != 1 {
		t.Fatalf("expected one current record per skill, got %d", p.Len())
	}
}

func TestGapSeverity(t *testing.T) {
	if got := GapSeverity(8, 5); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := GapSeverity(5, 8); got != 0 {
		t.Fatalf("expected 0 when over-qualified, got %v", got)
	}
	if got := GapSeverity(5, 5); got != 0 {
		t.Fatalf("expected 0 when exactly met, got %v", got)
	}
}

func TestRequirement_Validate(t *testing.T) {
	valid := Requirement{SkillID: uuid.New(), Required: 7, Criticality: 0.8}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []Requirement{
		{SkillID: uuid.Nil, Required: 5, Criticality: 0.5},
		{SkillID: uuid.New(), Required: -1, Criticality: 0.5},
		{SkillID: uuid.New(), Required: 11, Criticality: 0.5},
		{SkillID: uuid.New(), Required: 5, Criticality: -0.1},
		{SkillID: uuid.New(), Required: 5, Criticality: 1.1},
	}
	for i, r := range cases {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRequirement) {
			t.Fatalf("case %d: expected ErrInvalidRequirement, got %v", i, err)
		}
	}
}

func TestValidateRequirements_RejectsFirstMalformed(t *testing.T) {
	reqs := []Requirement{
		{SkillID: uuid.New(), Required: 5, Criticality: 0.5},
		{SkillID: uuid.New(), Required: 12, Criticality: 0.5},
	}
	if err := ValidateRequirements(reqs); !errors.Is(err, ErrInvalidRequirement) {
		t.Fatalf("expected ErrInvalidRequirement, got %v", err)
	}
	if err := ValidateRequirements(reqs[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
