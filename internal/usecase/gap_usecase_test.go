package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-verify/internal/domain/gap"
	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

func TestGapUsecase_JobNotFound(t *testing.T) {
	uc := NewGapUsecase(mockJobRepo{exists: false}, mockRequirementRepo{}, &mockProficiencyRepo{}, nil)
	_, err := uc.AnalyzeGaps(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestGapUsecase_ClassifiesAndOrders(t *testing.T) {
	subjectID := uuid.New()
	jobID := uuid.New()
	pythonID := uuid.New()
	dockerID := uuid.New()

	reqs := mockRequirementRepo{reqs: []proficiency.Requirement{
		{JobID: jobID, SkillID: pythonID, SkillName: "Python", Required: 8, Criticality: 0.9},
		{JobID: jobID, SkillID: dockerID, SkillName: "Docker", Required: 6, Criticality: 0.5},
	}}
	prof := &mockProficiencyRepo{records: map[uuid.UUID][]proficiency.Record{
		subjectID: {{SubjectID: subjectID, SkillID: pythonID, Value: 9, Status: proficiency.StatusVerified, RecordedAt: time.Now()}},
	}}

	uc := NewGapUsecase(mockJobRepo{exists: true}, reqs, prof, nil)
	res, err := uc.AnalyzeGaps(context.Background(), subjectID, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.MatchedCount != 1 || res.MissingCount != 1 || res.PartialCount != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if res.MatchScore != 0.5 {
		t.Fatalf("expected match score 0.5, got %v", res.MatchScore)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}
	// Docker has the larger shortfall and must lead.
	if res.Entries[0].Requirement.SkillID != dockerID {
		t.Fatalf("expected Docker first, got %s", res.Entries[0].Requirement.SkillName)
	}
	if res.Entries[0].Classification != gap.ClassMissing || res.Entries[0].Gap != 6 {
		t.Fatalf("unexpected Docker entry: %+v", res.Entries[0])
	}
	if res.Entries[1].Classification != gap.ClassMatched || res.Entries[1].Gap != 0 {
		t.Fatalf("unexpected Python entry: %+v", res.Entries[1])
	}
}

func TestGapUsecase_InvalidRequirementRow(t *testing.T) {
	reqs := mockRequirementRepo{reqs: []proficiency.Requirement{
		{JobID: uuid.New(), SkillID: uuid.New(), SkillName: "Go", Required: 14, Criticality: 0.5},
	}}
	uc := NewGapUsecase(mockJobRepo{exists: true}, reqs, &mockProficiencyRepo{}, nil)
	_, err := uc.AnalyzeGaps(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal for out-of-range requirement, got %v", err)
	}
}
