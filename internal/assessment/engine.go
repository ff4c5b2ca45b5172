package assessment

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	TotalQuestions int
	PassThreshold  float64
}

func DefaultConfig() Config {
	return Config{
		TotalQuestions: 20,
		PassThreshold:  60,
	}
}

// Engine owns the attempt lifecycle: selection at creation, answer
// writes, and completion. Scoring functions elsewhere are pure; this is
// the one place with mutable state, so writes to a single attempt are
// serialized through a per-attempt lock. Attempts for different subjects
// or skills share nothing.
type Engine struct {
	cfg Config

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewEngine(cfg Config) *Engine {
	if cfg.TotalQuestions <= 0 {
		cfg.TotalQuestions = DefaultConfig().TotalQuestions
	}
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = DefaultConfig().PassThreshold
	}
	return &Engine{
		cfg:   cfg,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (e *Engine) lockFor(attemptID uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[attemptID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[attemptID] = l
	}
	return l
}

func (e *Engine) releaseLock(attemptID uuid.UUID) {
	e.mu.Lock()
	delete(e.locks, attemptID)
	e.mu.Unlock()
}

// StartAttempt selects questions from the source and creates a new
// in-progress attempt. The question list, shuffle seed and max score are
// fixed here and never change afterwards.
func (e *Engine) StartAttempt(subjectID, skillID uuid.UUID, source QuestionSource, now time.Time) (*Attempt, []Question, error) {
	bank, err := source.QuestionsForSkill(skillID)
	if err != nil {
		return nil, nil, err
	}
	if len(bank) == 0 {
		return nil, nil, ErrNoQuestionsAvailable
	}

	seed := DeriveSeed(subjectID, skillID, now)
	picked := selectQuestions(bank, e.cfg.TotalQuestions, seed)
	if len(picked) == 0 {
		return nil, nil, ErrNoQuestionsAvailable
	}

	maxScore := 0
	ids := make([]uuid.UUID, 0, len(picked))
	for i := range picked {
		if picked[i].Points <= 0 {
			picked[i].Points = PointsFor(picked[i].Difficulty)
		}
		maxScore += picked[i].Points
		ids = append(ids, picked[i].ID)
	}

	a := &Attempt{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		SkillID:     skillID,
		QuestionIDs: ids,
		ShuffleSeed: seed,
		Status:      StatusInProgress,
		Answers:     make(map[uuid.UUID]string, len(ids)),
		MaxScore:    maxScore,
		StartedAt:   now,
	}
	return a, picked, nil
}

// SubmitAnswer records the subject's answer text for one question.
// Resubmitting overwrites the prior answer while the attempt is open;
// writes against a completed attempt fail with ErrStaleAttempt.
func (e *Engine) SubmitAnswer(a *Attempt, questionID uuid.UUID, answer string) error {
	l := e.lockFor(a.ID)
	l.Lock()
	defer l.Unlock()

	if a.Status != StatusInProgress {
		return ErrStaleAttempt
	}

	found := false
	for _, id := range a.QuestionIDs {
		if id == questionID {
			found = true
			break
		}
	}
	if !found {
		return ErrQuestionNotInSet
	}

	if a.Answers == nil {
		a.Answers = make(map[uuid.UUID]string)
	}
	a.Answers[questionID] = answer
	return nil
}

// Complete scores the attempt and transitions it in_progress → completed.
// The status check and the transition happen under the same per-attempt
// lock as answer writes, so a late answer can never land on a completed
// attempt. A second Complete fails with ErrStaleAttempt and leaves the
// stored score untouched.
func (e *Engine) Complete(a *Attempt, questions map[uuid.UUID]Question, now time.Time) error {
	l := e.lockFor(a.ID)
	l.Lock()
	defer l.Unlock()

	if a.Status != StatusInProgress {
		return ErrStaleAttempt
	}

	raw := 0
	for _, id := range a.QuestionIDs {
		q, ok := questions[id]
		if !ok {
			continue
		}
		answer, answered := a.Answers[id]
		if !answered {
			continue
		}
		if AnswerCorrect(q, answer) {
			raw += q.Points
		}
	}

	a.RawScore = raw
	if a.MaxScore > 0 {
		a.Percentage = 100 * float64(raw) / float64(a.MaxScore)
	}
	a.ProficiencyLevel = math.Round(a.Percentage) / 10
	a.Passed = a.Percentage >= e.cfg.PassThreshold
	a.Status = StatusCompleted
	a.CompletedAt = &now

	e.releaseLock(a.ID)
	return nil
}

// AnswerCorrect compares the submitted text against the stored correct
// answer text. Comparison is by literal value, never by option position:
// display positions differ from one attempt to the next.
func AnswerCorrect(q Question, answer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectText)
}
