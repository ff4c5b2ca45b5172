package gap

import (
	"sort"

	"skill-verify/internal/domain/proficiency"
)

type Classification string

const (
	ClassMatched Classification = "matched"
	ClassPartial Classification = "partial"
	ClassMissing Classification = "missing"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityModerate Priority = "moderate"
)

// Priority bucket thresholds on required proficiency. Fixed, not
// configurable per call.
const (
	criticalThreshold = 8.0
	highThreshold     = 5.0
)

type Entry struct {
	Requirement    proficiency.Requirement
	Have           float64
	HaveStatus     proficiency.Status
	Classification Classification
	Gap            float64
	Priority       Priority
}

type Result struct {
	Entries      []Entry
	MatchedCount int
	PartialCount int
	MissingCount int
	MatchScore   float64
}

// Analyze classifies every requirement against the subject's effective
// proficiency. Entries come back ordered by gap descending, ties broken
// by criticality descending then skill name ascending.
func Analyze(reqs []proficiency.Requirement, profile proficiency.Profile) Result {
	entries := make([]Entry, 0, len(reqs))

	matched := 0
	partial := 0
	missing := 0

	for _, r := range reqs {
		have, status := profile.Effective(r.SkillID)

		e := Entry{
			Requirement: r,
			Have:        have,
			HaveStatus:  status,
			Gap:         proficiency.GapSeverity(r.Required, have),
			Priority:    bucket(r.Required),
		}

		switch {
		case have >= r.Required:
			e.Classification = ClassMatched
			matched++
		case have > 0:
			e.Classification = ClassPartial
			partial++
		default:
			e.Classification = ClassMissing
			missing++
		}

		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Gap != entries[j].Gap {
			return entries[i].Gap > entries[j].Gap
		}
		if entries[i].Requirement.Criticality != entries[j].Requirement.Criticality {
			return entries[i].Requirement.Criticality > entries[j].Requirement.Criticality
		}
		return entries[i].Requirement.SkillName < entries[j].Requirement.SkillName
	})

	score := 0.0
	if len(reqs) > 0 {
		score = float64(matched) / float64(len(reqs))
	}

	return Result{
		Entries:      entries,
		MatchedCount: matched,
		PartialCount: partial,
		MissingCount: missing,
		MatchScore:   score,
	}
}

func bucket(required float64) Priority {
	switch {
	case required >= criticalThreshold:
		return PriorityCritical
	case required >= highThreshold:
		return PriorityHigh
	default:
		return PriorityModerate
	}
}
