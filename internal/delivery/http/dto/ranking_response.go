package dto

import (
	"time"

	"github.com/google/uuid"
)

type RankingBreakdownResponse struct {
	SkillMatch     float64 `json:"skill_match"`
	VerifiedRatio  float64 `json:"verified_ratio"`
	AvgAssessment  float64 `json:"avg_assessment"`
	FirstTryPass   float64 `json:"first_try_pass"`
	ProficiencyFit float64 `json:"proficiency_fit"`
	Total          float64 `json:"total"`
}

type RankedCandidateResponse struct {
	Rank      int                      `json:"rank"`
	SubjectID uuid.UUID                `json:"subject_id"`
	AppliedAt time.Time                `json:"applied_at"`
	Breakdown RankingBreakdownResponse `json:"breakdown"`
}

type RankingResponse struct {
	JobID      uuid.UUID                 `json:"job_id"`
	Candidates []RankedCandidateResponse `json:"candidates"`
}
