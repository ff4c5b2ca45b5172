package dto

import "github.com/google/uuid"

type GapEntryResponse struct {
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	Required       float64   `json:"required"`
	Have           float64   `json:"have"`
	HaveStatus     string    `json:"have_status"`
	Classification string    `json:"classification"`
	Gap            float64   `json:"gap"`
	Priority       string    `json:"priority"`
}

type GapAnalysisResponse struct {
	JobID        uuid.UUID          `json:"job_id"`
	MatchedCount int                `json:"matched_count"`
	PartialCount int                `json:"partial_count"`
	MissingCount int                `json:"missing_count"`
	MatchScore   float64            `json:"match_score"`
	Entries      []GapEntryResponse `json:"entries"`
}
