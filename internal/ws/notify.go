package ws

import (
	"encoding/json"
	"time"

	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

type AssessmentCompletedEvent struct {
	Type       string  `json:"type"`
	AttemptID  string  `json:"attempt_id"`
	SkillID    string  `json:"skill_id"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
	Timestamp  string  `json:"timestamp"`
}

type ProficiencyVerifiedEvent struct {
	Type      string  `json:"type"`
	SkillID   string  `json:"skill_id"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// Notifier adapts the hub to the event surface the assessment flow calls.
// A nil notifier or hub drops events silently.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) AssessmentCompleted(subjectID, attemptID, skillID uuid.UUID, percentage float64, passed bool) {
	if n == nil || n.hub == nil {
		return
	}
	evt := AssessmentCompletedEvent{
		Type:       "assessment.completed",
		AttemptID:  attemptID.String(),
		SkillID:    skillID.String(),
		Percentage: percentage,
		Passed:     passed,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(subjectID, b)
}

func (n *Notifier) ProficiencyVerified(rec proficiency.Record) {
	if n == nil || n.hub == nil {
		return
	}
	evt := ProficiencyVerifiedEvent{
		Type:      "proficiency.verified",
		SkillID:   rec.SkillID.String(),
		Value:     rec.Value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(rec.SubjectID, b)
}
