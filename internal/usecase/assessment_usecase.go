package usecase

import (
	"context"
	"errors"
	"time"

	"skill-verify/internal/assessment"
	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/infrastructure/cache"
	"skill-verify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier pushes assessment lifecycle events to connected clients. A nil
// notifier is valid and drops everything.
type Notifier interface {
	AssessmentCompleted(subjectID, attemptID, skillID uuid.UUID, percentage float64, passed bool)
	ProficiencyVerified(rec proficiency.Record)
}

// AttemptQuestionView is one question as the subject sees it: options in
// the attempt's display order, correct answer withheld.
type AttemptQuestionView struct {
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	Options    []string  `json:"options"`
	Difficulty string    `json:"difficulty"`
	Points     int       `json:"points"`
	Answered   bool      `json:"answered"`
}

type AttemptView struct {
	AttemptID        uuid.UUID             `json:"attempt_id"`
	SubjectID        uuid.UUID             `json:"subject_id"`
	SkillID          uuid.UUID             `json:"skill_id"`
	Status           string                `json:"status"`
	Questions        []AttemptQuestionView `json:"questions"`
	StartedAt        time.Time             `json:"started_at"`
	CompletedAt      *time.Time            `json:"completed_at,omitempty"`
	RawScore         int                   `json:"raw_score"`
	MaxScore         int                   `json:"max_score"`
	Percentage       float64               `json:"percentage"`
	ProficiencyLevel float64               `json:"proficiency_level"`
	Passed           bool                  `json:"passed"`
}

type AssessmentUsecase interface {
	Start(ctx context.Context, subjectID, skillID uuid.UUID) (AttemptView, error)
	Get(ctx context.Context, subjectID, attemptID uuid.UUID) (AttemptView, error)
	Answer(ctx context.Context, subjectID, attemptID, questionID uuid.UUID, answer string) error
	Submit(ctx context.Context, subjectID, attemptID uuid.UUID) (AttemptView, error)
}

type Assessment struct {
	engine      *assessment.Engine
	skills      repository.SkillRepository
	questions   repository.QuestionRepository
	attempts    repository.AttemptRepository
	proficiency repository.ProficiencyRepository
	cache       *cache.Redis
	notifier    Notifier
	logger      *zap.Logger
}

func NewAssessmentUsecase(
	engine *assessment.Engine,
	skills repository.SkillRepository,
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	prof repository.ProficiencyRepository,
	c *cache.Redis,
	notifier Notifier,
	logger *zap.Logger,
) *Assessment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessment{
		engine:      engine,
		skills:      skills,
		questions:   questions,
		attempts:    attempts,
		proficiency: prof,
		cache:       c,
		notifier:    notifier,
		logger:      logger,
	}
}

// bankSource adapts the question repository to the engine's selection
// interface, pinning the request context.
type bankSource struct {
	ctx  context.Context
	repo repository.QuestionRepository
}

func (s bankSource) QuestionsForSkill(skillID uuid.UUID) ([]assessment.Question, error) {
	return s.repo.FindBySkillID(s.ctx, skillID)
}

func (u *Assessment) Start(ctx context.Context, subjectID, skillID uuid.UUID) (AttemptView, error) {
	if subjectID == uuid.Nil {
		return AttemptView{}, ErrUnauthorized
	}

	skill, err := u.skills.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return AttemptView{}, ErrSkillNotFound
		}
		u.logger.Error("skill lookup failed", zap.String("skill_id", skillID.String()), zap.Error(err))
		return AttemptView{}, ErrInternal
	}
	if !skill.Active {
		return AttemptView{}, ErrSkillNotFound
	}

	attempt, picked, err := u.engine.StartAttempt(subjectID, skillID, bankSource{ctx: ctx, repo: u.questions}, time.Now().UTC())
	if err != nil {
		if errors.Is(err, assessment.ErrNoQuestionsAvailable) {
			return AttemptView{}, ErrNoQuestions
		}
		u.logger.Error("start attempt failed", zap.String("skill_id", skillID.String()), zap.Error(err))
		return AttemptView{}, ErrInternal
	}

	if err := u.attempts.Create(ctx, attempt); err != nil {
		u.logger.Error("persist attempt failed", zap.String("attempt_id", attempt.ID.String()), zap.Error(err))
		return AttemptView{}, ErrInternal
	}

	if err := u.questions.IncrementUsage(ctx, attempt.QuestionIDs); err != nil {
		u.logger.Warn("increment usage failed", zap.Error(err))
	}

	return u.render(attempt, questionMap(picked)), nil
}

func (u *Assessment) Get(ctx context.Context, subjectID, attemptID uuid.UUID) (AttemptView, error) {
	attempt, questions, err := u.load(ctx, subjectID, attemptID)
	if err != nil {
		return AttemptView{}, err
	}
	return u.render(attempt, questions), nil
}

func (u *Assessment) Answer(ctx context.Context, subjectID, attemptID, questionID uuid.UUID, answer string) error {
	attempt, _, err := u.load(ctx, subjectID, attemptID)
	if err != nil {
		return err
	}

	if err := u.engine.SubmitAnswer(attempt, questionID, answer); err != nil {
		switch {
		case errors.Is(err, assessment.ErrStaleAttempt):
			return ErrStaleAttempt
		case errors.Is(err, assessment.ErrQuestionNotInSet):
			return ErrInvalidInput
		}
		return ErrInternal
	}

	// The store re-checks attempt status inside the write itself: a
	// submit that completed after our snapshot loaded rejects the row
	// here instead of mutating a finished attempt.
	if err := u.attempts.SaveAnswer(ctx, attemptID, questionID, answer, time.Now().UTC()); err != nil {
		if errors.Is(err, assessment.ErrStaleAttempt) {
			return ErrStaleAttempt
		}
		u.logger.Error("persist answer failed", zap.String("attempt_id", attemptID.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *Assessment) Submit(ctx context.Context, subjectID, attemptID uuid.UUID) (AttemptView, error) {
	attempt, questions, err := u.load(ctx, subjectID, attemptID)
	if err != nil {
		return AttemptView{}, err
	}

	if err := u.engine.Complete(attempt, questions, time.Now().UTC()); err != nil {
		if errors.Is(err, assessment.ErrStaleAttempt) {
			return AttemptView{}, ErrStaleAttempt
		}
		return AttemptView{}, ErrInternal
	}

	if err := u.attempts.MarkCompleted(ctx, attempt); err != nil {
		if errors.Is(err, assessment.ErrStaleAttempt) {
			return AttemptView{}, ErrStaleAttempt
		}
		u.logger.Error("persist completion failed", zap.String("attempt_id", attemptID.String()), zap.Error(err))
		return AttemptView{}, ErrInternal
	}

	rec := attempt.VerifiedRecord()
	if err := u.proficiency.Upsert(ctx, rec); err != nil {
		u.logger.Error("persist proficiency failed", zap.String("attempt_id", attemptID.String()), zap.Error(err))
		return AttemptView{}, ErrInternal
	}

	correct := make([]uuid.UUID, 0, len(attempt.QuestionIDs))
	for _, id := range attempt.QuestionIDs {
		q, ok := questions[id]
		if !ok {
			continue
		}
		if answer, answered := attempt.Answers[id]; answered && assessment.AnswerCorrect(q, answer) {
			correct = append(correct, id)
		}
	}
	if err := u.questions.IncrementCorrect(ctx, correct); err != nil {
		u.logger.Warn("increment correct failed", zap.Error(err))
	}

	if err := u.cache.InvalidateSubject(ctx, subjectID); err != nil {
		u.logger.Warn("cache invalidation failed", zap.Error(err))
	}

	if u.notifier != nil {
		u.notifier.AssessmentCompleted(subjectID, attempt.ID, attempt.SkillID, attempt.Percentage, attempt.Passed)
		u.notifier.ProficiencyVerified(rec)
	}

	return u.render(attempt, questions), nil
}

func (u *Assessment) load(ctx context.Context, subjectID, attemptID uuid.UUID) (*assessment.Attempt, map[uuid.UUID]assessment.Question, error) {
	if subjectID == uuid.Nil {
		return nil, nil, ErrUnauthorized
	}
	if attemptID == uuid.Nil {
		return nil, nil, ErrAttemptNotFound
	}

	attempt, err := u.attempts.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, assessment.ErrAttemptNotFound) {
			return nil, nil, ErrAttemptNotFound
		}
		u.logger.Error("load attempt failed", zap.String("attempt_id", attemptID.String()), zap.Error(err))
		return nil, nil, ErrInternal
	}
	if attempt.SubjectID != subjectID {
		return nil, nil, ErrForbidden
	}

	bank, err := u.questions.FindBySkillID(ctx, attempt.SkillID)
	if err != nil {
		u.logger.Error("load questions failed", zap.String("attempt_id", attemptID.String()), zap.Error(err))
		return nil, nil, ErrInternal
	}
	return attempt, questionMap(bank), nil
}

func (u *Assessment) render(a *assessment.Attempt, questions map[uuid.UUID]assessment.Question) AttemptView {
	views := make([]AttemptQuestionView, 0, len(a.QuestionIDs))
	for _, id := range a.QuestionIDs {
		q, ok := questions[id]
		if !ok {
			continue
		}
		_, answered := a.Answers[id]
		views = append(views, AttemptQuestionView{
			QuestionID: q.ID,
			Text:       q.Text,
			Options:    assessment.ShuffledOptions(a.ShuffleSeed, q),
			Difficulty: string(q.Difficulty),
			Points:     q.Points,
			Answered:   answered,
		})
	}

	return AttemptView{
		AttemptID:        a.ID,
		SubjectID:        a.SubjectID,
		SkillID:          a.SkillID,
		Status:           string(a.Status),
		Questions:        views,
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
		RawScore:         a.RawScore,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		ProficiencyLevel: a.ProficiencyLevel,
		Passed:           a.Passed,
	}
}

func questionMap(qs []assessment.Question) map[uuid.UUID]assessment.Question {
	out := make(map[uuid.UUID]assessment.Question, len(qs))
	for _, q := range qs {
		out[q.ID] = q
	}
	return out
}
