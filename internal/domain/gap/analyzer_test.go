package gap

import (
	"testing"
	"time"

	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

func req(skillID uuid.UUID, name string, required, criticality float64) proficiency.Requirement {
	return proficiency.Requirement{
		JobID:       uuid.Nil,
		SkillID:     skillID,
		SkillName:   name,
		Required:    required,
		Criticality: criticality,
	}
}

func record(subjectID, skillID uuid.UUID, value float64, status proficiency.Status) proficiency.Record {
	return proficiency.Record{
		SubjectID:  subjectID,
		SkillID:    skillID,
		Value:      value,
		Status:     status,
		Source:     proficiency.SourceSelfReport,
		RecordedAt: time.Now().UTC(),
	}
}

func TestAnalyze_PythonDockerScenario(t *testing.T) {
	subjectID := uuid.New()
	pythonID := uuid.New()
	dockerID := uuid.New()

	reqs := []proficiency.Requirement{
		req(pythonID, "Python", 8, 0.9),
		req(dockerID, "Docker", 6, 0.7),
	}
	profile := proficiency.NewProfile([]proficiency.Record{
		record(subjectID, pythonID, 9, proficiency.StatusVerified),
	})

	res := Analyze(reqs, profile)

	if res.MatchScore != 0.5 {
		t.Fatalf("expected match_score=0.5, got %v", res.MatchScore)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}

	// Docker has the larger gap, so it sorts first.
	first := res.Entries[0]
	if first.Requirement.SkillName != "Docker" || first.Classification != ClassMissing {
		t.Fatalf("expected missing Docker first, got %s %s", first.Requirement.SkillName, first.Classification)
	}
	if first.Gap != 6 {
		t.Fatalf("expected Docker gap=6, got %v", first.Gap)
	}

	second := res.Entries[1]
	if second.Requirement.SkillName != "Python" || second.Classification != ClassMatched {
		t.Fatalf("expected matched Python second, got %s %s", second.Requirement.SkillName, second.Classification)
	}
	if second.Gap != 0 {
		t.Fatalf("expected Python gap=0, got %v", second.Gap)
	}
}

func TestAnalyze_ClassificationIsExhaustiveAndExclusive(t *testing.T) {
	subjectID := uuid.New()
	matchedID := uuid.New()
	partialID := uuid.New()
	missingID := uuid.New()

	reqs := []proficiency.Requirement{
		req(matchedID, "Go", 5, 0.5),
		req(partialID, "Kubernetes", 7, 0.5),
		req(missingID, "Terraform", 4, 0.5),
	}
	profile := proficiency.NewProfile([]proficiency.Record{
		record(subjectID, matchedID, 6, proficiency.StatusClaimed),
		record(subjectID, partialID, 3, proficiency.StatusClaimed),
	})

	res := Analyze(reqs, profile)

	counts := map[Classification]int{}
	for _, e := range res.Entries {
		counts[e.Classification]++
	}
	if counts[ClassMatched] != 1 || counts[ClassPartial] != 1 || counts[ClassMissing] != 1 {
		t.Fatalf("expected one of each classification, got %v", counts)
	}
	if res.MatchedCount+res.PartialCount+res.MissingCount != len(reqs) {
		t.Fatalf("classification counts do not cover all requirements")
	}
}

func TestAnalyze_PriorityBuckets(t *testing.T) {
	profile := proficiency.NewProfile(nil)

	reqs := []proficiency.Requirement{
		req(uuid.New(), "Critical", 8, 0),
		req(uuid.New(), "High", 5, 0),
		req(uuid.New(), "AlsoHigh", 7.9, 0),
		req(uuid.New(), "Moderate", 4.9, 0),
	}

	res := Analyze(reqs, profile)
	byName := map[string]Priority{}
	for _, e := range res.Entries {
		byName[e.Requirement.SkillName] = e.Priority
	}

	if byName["Critical"] != PriorityCritical {
		t.Fatalf("required=8 should be critical, got %s", byName["Critical"])
	}
	if byName["High"] != PriorityHigh || byName["AlsoHigh"] != PriorityHigh {
		t.Fatalf("5<=required<8 should be high, got %s/%s", byName["High"], byName["AlsoHigh"])
	}
	if byName["Moderate"] != PriorityModerate {
		t.Fatalf("required<5 should be moderate, got %s", byName["Moderate"])
	}
}

func TestAnalyze_NoRequirements(t *testing.T) {
	res := Analyze(nil, proficiency.NewProfile(nil))
	if res.MatchScore != 0 {
		t.Fatalf("expected match_score=0 with no requirements, got %v", res.MatchScore)
	}
	if len(res.Entries) != 0 {
		t.Fatalf("expected no entries")
	}
}

func TestAnalyze_TieBreakByCriticalityThenName(t *testing.T) {
	profile := proficiency.NewProfile(nil)

	reqs := []proficiency.Requirement{
		req(uuid.New(), "Bravo", 6, 0.3),
		req(uuid.New(), "Alpha", 6, 0.3),
		req(uuid.New(), "Zulu", 6, 0.8),
	}

	res := Analyze(reqs, profile)

	// Equal gaps: higher criticality first, then name ascending.
	if res.Entries[0].Requirement.SkillName != "Zulu" {
		t.Fatalf("expected Zulu first, got %s", res.Entries[0].Requirement.SkillName)
	}
	if res.Entries[1].Requirement.SkillName != "Alpha" || res.Entries[2].Requirement.SkillName != "Bravo" {
		t.Fatalf("expected Alpha then Bravo, got %s then %s",
			res.Entries[1].Requirement.SkillName, res.Entries[2].Requirement.SkillName)
	}
}
