package dto

import "github.com/google/uuid"

type MatchBreakdownResponse struct {
	SkillScore      float64 `json:"skill_score"`
	TextScore       float64 `json:"text_score"`
	PreferenceScore float64 `json:"preference_score"`
	Total           float64 `json:"total"`
}

type MatchResponse struct {
	JobID     uuid.UUID              `json:"job_id"`
	Breakdown MatchBreakdownResponse `json:"breakdown"`
}
