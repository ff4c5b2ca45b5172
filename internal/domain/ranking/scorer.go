package ranking

import (
	"sort"
	"time"

	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/domain/similarity"

	"github.com/google/uuid"
)

// Component weights. Preserved as-is from the product definition.
const (
	weightSkillMatch     = 0.30
	weightVerifiedRatio  = 0.15
	weightAssessment     = 0.20
	weightFirstTryPass   = 0.10
	weightProficiencyFit = 0.25
)

// AttemptStat is one completed assessment attempt, reduced to what
// ranking needs.
type AttemptStat struct {
	SkillID    uuid.UUID
	Percentage float64
	Passed     bool
	StartedAt  time.Time
}

type Candidate struct {
	ID        uuid.UUID
	AppliedAt time.Time
	Profile   proficiency.Profile
	Attempts  []AttemptStat
}

type Breakdown struct {
	SkillMatch     float64
	VerifiedRatio  float64
	AvgAssessment  float64
	FirstTryPass   float64
	ProficiencyFit float64
	Total          float64
}

type Ranked struct {
	Candidate Candidate
	Breakdown Breakdown
}

// Score computes the candidate-fit components against one job's
// requirement list. All components live in [0,1] and degrade to 0 on
// missing data, so the weighted total stays in [0,1].
func Score(c Candidate, reqs []proficiency.Requirement) Breakdown {
	required := make(similarity.Set, len(reqs))
	for _, r := range reqs {
		required[r.SkillID] = struct{}{}
	}
	have := similarity.NewSet(c.Profile.SkillIDs()...)

	b := Breakdown{
		SkillMatch:     similarity.Jaccard(have, required),
		VerifiedRatio:  verifiedRatio(c.Profile, reqs),
		ProficiencyFit: proficiencyFit(c.Profile, reqs),
	}
	b.AvgAssessment, b.FirstTryPass = assessmentStats(c.Attempts, required)

	b.Total = combine(b)
	return b
}

func combine(b Breakdown) float64 {
	return weightSkillMatch*b.SkillMatch +
		weightVerifiedRatio*b.VerifiedRatio +
		weightAssessment*b.AvgAssessment +
		weightFirstTryPass*b.FirstTryPass +
		weightProficiencyFit*b.ProficiencyFit
}

// verifiedRatio is, of the required skills the candidate actually has,
// the fraction carrying verified status.
func verifiedRatio(profile proficiency.Profile, reqs []proficiency.Requirement) float64 {
	matched := 0
	verified := 0
	for _, r := range reqs {
		value, status := profile.Effective(r.SkillID)
		if value <= 0 && status == proficiency.StatusMissing {
			continue
		}
		matched++
		if status == proficiency.StatusVerified {
			verified++
		}
	}
	if matched == 0 {
		return 0
	}
	return float64(verified) / float64(matched)
}

// proficiencyFit is the criticality-weighted mean of min(1, have/required)
// over the job's requirements. Over-qualification caps at 1 per skill.
// Requirements with required=0 are excluded; zero total criticality falls
// back to an unweighted mean.
func proficiencyFit(profile proficiency.Profile, reqs []proficiency.Requirement) float64 {
	var weightSum, fitSum float64
	var plainSum float64
	n := 0

	for _, r := range reqs {
		if r.Required <= 0 {
			continue
		}
		have, _ := profile.Effective(r.SkillID)
		fit := have / r.Required
		if fit > 1 {
			fit = 1
		}
		if fit < 0 {
			fit = 0
		}
		weightSum += r.Criticality
		fitSum += r.Criticality * fit
		plainSum += fit
		n++
	}

	if n == 0 {
		return 0
	}
	if weightSum == 0 {
		return plainSum / float64(n)
	}
	return fitSum / weightSum
}

func assessmentStats(attempts []AttemptStat, relevant similarity.Set) (avg, firstTryPass float64) {
	var pctSum float64
	pctCount := 0

	firstBySkill := make(map[uuid.UUID]AttemptStat)
	for _, a := range attempts {
		if _, ok := relevant[a.SkillID]; !ok {
			continue
		}
		pctSum += a.Percentage
		pctCount++

		cur, seen := firstBySkill[a.SkillID]
		if !seen || a.StartedAt.Before(cur.StartedAt) {
			firstBySkill[a.SkillID] = a
		}
	}

	if pctCount > 0 {
		avg = pctSum / float64(pctCount) / 100
	}

	if len(firstBySkill) > 0 {
		passed := 0
		for _, a := range firstBySkill {
			if a.Passed {
				passed++
			}
		}
		firstTryPass = float64(passed) / float64(len(firstBySkill))
	}
	return avg, firstTryPass
}

// Rank scores every candidate and sorts them into the deterministic
// display order: total descending, verified ratio descending, earliest
// application first.
func Rank(candidates []Candidate, reqs []proficiency.Requirement) []Ranked {
	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Ranked{Candidate: c, Breakdown: Score(c, reqs)})
	}
	SortRanked(out)
	return out
}

// SortRanked orders pre-scored candidates without recomputing scores, for
// callers that fan scoring out across workers first.
func SortRanked(out []Ranked) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Breakdown.Total != out[j].Breakdown.Total {
			return out[i].Breakdown.Total > out[j].Breakdown.Total
		}
		if out[i].Breakdown.VerifiedRatio != out[j].Breakdown.VerifiedRatio {
			return out[i].Breakdown.VerifiedRatio > out[j].Breakdown.VerifiedRatio
		}
		return out[i].Candidate.AppliedAt.Before(out[j].Candidate.AppliedAt)
	})
}
