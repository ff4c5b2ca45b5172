package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartAssessmentRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
}

type SubmitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

type AttemptQuestionResponse struct {
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	Options    []string  `json:"options"`
	Difficulty string    `json:"difficulty"`
	Points     int       `json:"points"`
	Answered   bool      `json:"answered"`
}

type AttemptResponse struct {
	AttemptID        uuid.UUID                 `json:"attempt_id"`
	SkillID          uuid.UUID                 `json:"skill_id"`
	Status           string                    `json:"status"`
	Questions        []AttemptQuestionResponse `json:"questions"`
	StartedAt        time.Time                 `json:"started_at"`
	CompletedAt      *time.Time                `json:"completed_at,omitempty"`
	RawScore         int                       `json:"raw_score"`
	MaxScore         int                       `json:"max_score"`
	Percentage       float64                   `json:"percentage"`
	ProficiencyLevel float64                   `json:"proficiency_level"`
	Passed           bool                      `json:"passed"`
}
