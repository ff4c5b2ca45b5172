package assessment

import (
	"errors"
	"time"

	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

var (
	// ErrNoQuestionsAvailable means the bank holds nothing for the skill;
	// the caller recovers by sourcing questions and retrying.
	ErrNoQuestionsAvailable = errors.New("no questions available for skill")
	// ErrStaleAttempt means the operation hit an already-completed
	// attempt; the caller must start a new one.
	ErrStaleAttempt = errors.New("attempt already completed")

	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotInSet = errors.New("question not part of attempt")
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PointsFor is the configured point value per difficulty tier.
func PointsFor(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 15
	default:
		return 0
	}
}

// Question is one bank entry. The correct answer is stored as literal
// text, never as an option index: display order is shuffled per attempt,
// so an index-based key would be meaningless.
type Question struct {
	ID           uuid.UUID
	SkillID      uuid.UUID
	Text         string
	Options      []string
	CorrectText  string
	Difficulty   Difficulty
	Points       int
	UsageCount   int
	CorrectCount int
}

type AttemptStatus string

const (
	StatusInProgress AttemptStatus = "in_progress"
	StatusCompleted  AttemptStatus = "completed"
)

// Attempt is one assessment run. QuestionIDs and ShuffleSeed are fixed at
// creation; the whole record is immutable after completion.
type Attempt struct {
	ID               uuid.UUID
	SubjectID        uuid.UUID
	SkillID          uuid.UUID
	QuestionIDs      []uuid.UUID
	ShuffleSeed      uint64
	Status           AttemptStatus
	Answers          map[uuid.UUID]string
	RawScore         int
	MaxScore         int
	Percentage       float64
	ProficiencyLevel float64
	Passed           bool
	StartedAt        time.Time
	CompletedAt      *time.Time
}

// VerifiedRecord derives the proficiency record a completed attempt
// writes for its (subject, skill) pair.
func (a *Attempt) VerifiedRecord() proficiency.Record {
	completedAt := a.StartedAt
	if a.CompletedAt != nil {
		completedAt = *a.CompletedAt
	}
	return proficiency.Record{
		SubjectID:  a.SubjectID,
		SkillID:    a.SkillID,
		Value:      a.ProficiencyLevel,
		Status:     proficiency.StatusVerified,
		Source:     proficiency.SourceAssessment,
		RecordedAt: completedAt,
	}
}

// QuestionSource abstracts the bank read at selection time. The engine
// never triggers question generation itself; on an empty bank it surfaces
// ErrNoQuestionsAvailable and an external collaborator repopulates.
type QuestionSource interface {
	QuestionsForSkill(skillID uuid.UUID) ([]Question, error)
}
