package match

import (
	"strings"

	"skill-verify/internal/domain/similarity"
)

// Top-level blend. Preserved as-is from the product definition; do not
// retune without a product decision.
const (
	weightSkill      = 0.55
	weightText       = 0.10
	weightPreference = 0.35
)

// Preference indicator weights, summing to 1.
const (
	weightExperience = 0.30
	weightLocation   = 0.25
	weightJobType    = 0.20
	weightIndustry   = 0.15
	weightSalary     = 0.10
)

type CandidateProfile struct {
	Skills          similarity.Set
	ProfileText     string
	ExperienceYears float64
	Location        string
	JobType         string
	Industry        string
	ExpectedSalary  float64
}

type JobPosting struct {
	Skills          similarity.Set
	DescriptionText string
	RequiredYears   float64
	Location        string
	JobType         string
	Industry        string
	SalaryMin       float64
	SalaryMax       float64
}

type Breakdown struct {
	SkillScore      float64
	TextScore       float64
	PreferenceScore float64
	Total           float64
}

// Score combines skill overlap, free-text similarity and preference
// alignment into one fit score in [0,1]. It is total over sparse input:
// empty fields fall back to the per-formula defaults instead of erroring.
func Score(user CandidateProfile, job JobPosting) Breakdown {
	skill := 0.5*similarity.Jaccard(user.Skills, job.Skills) + 0.5*similarity.Coverage(job.Skills, user.Skills)
	text := similarity.TextSimilarity(user.ProfileText, job.DescriptionText)
	pref := preferenceScore(user, job)

	total := weightSkill*skill + weightText*text + weightPreference*pref
	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}

	return Breakdown{
		SkillScore:      skill,
		TextScore:       text,
		PreferenceScore: pref,
		Total:           total,
	}
}

func preferenceScore(user CandidateProfile, job JobPosting) float64 {
	return weightExperience*experienceScore(user.ExperienceYears, job.RequiredYears) +
		weightLocation*locationScore(user.Location, job.Location) +
		weightJobType*exactScore(user.JobType, job.JobType) +
		weightIndustry*exactScore(user.Industry, job.Industry) +
		weightSalary*salaryScore(user.ExpectedSalary, job.SalaryMin, job.SalaryMax)
}

func experienceScore(have, required float64) float64 {
	if required <= 0 {
		return 1
	}
	if have <= 0 {
		return 0
	}
	if have >= required {
		return 1
	}
	return have / required
}

func locationScore(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == "remote" || b == "remote" {
		return 1
	}
	if a == b {
		return 1
	}
	return 0
}

func exactScore(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return 0
}

// salaryScore grades how close the candidate's expectation sits to the
// job's offered band: inside is 1.0, within 20% of the nearer edge is
// 0.5, further out is 0.
func salaryScore(expected, min, max float64) float64 {
	if expected <= 0 || max <= 0 {
		return 0
	}
	if min > max {
		min, max = max, min
	}
	if expected >= min && expected <= max {
		return 1
	}
	if expected < min && min > 0 {
		if (min-expected)/min < 0.2 {
			return 0.5
		}
		return 0
	}
	if (expected-max)/max < 0.2 {
		return 0.5
	}
	return 0
}
