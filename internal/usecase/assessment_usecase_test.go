package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skill-verify/internal/assessment"
	"skill-verify/internal/domain/proficiency"

	"github.com/google/uuid"
)

func testBank(skillID uuid.UUID) []assessment.Question {
	bank := make([]assessment.Question, 0, 30)
	add := func(n int, d assessment.Difficulty) {
		for i := 0; i < n; i++ {
			bank = append(bank, assessment.Question{
				ID:          uuid.New(),
				SkillID:     skillID,
				Text:        fmt.Sprintf("%s question %d", d, i),
				Options:     []string{"alpha", "beta", "gamma", "delta"},
				CorrectText: "alpha",
				Difficulty:  d,
				Points:      assessment.PointsFor(d),
			})
		}
	}
	add(10, assessment.DifficultyEasy)
	add(10, assessment.DifficultyMedium)
	add(10, assessment.DifficultyHard)
	return bank
}

func newAssessmentFixture(t *testing.T) (*Assessment, uuid.UUID, *mockQuestionRepo, *mockAttemptRepo, *mockProficiencyRepo, *mockNotifier) {
	t.Helper()
	skillID := uuid.New()
	questions := &mockQuestionRepo{bank: testBank(skillID)}
	attempts := newMockAttemptRepo()
	prof := &mockProficiencyRepo{}
	notifier := &mockNotifier{}

	uc := NewAssessmentUsecase(
		assessment.NewEngine(assessment.DefaultConfig()),
		mockSkillRepo{skill: proficiency.Skill{ID: skillID, Name: "Go", Active: true}},
		questions, attempts, prof, nil, notifier, nil,
	)
	return uc, skillID, questions, attempts, prof, notifier
}

func TestAssessmentUsecase_StartHidesCorrectAnswer(t *testing.T) {
	uc, skillID, questions, _, _, _ := newAssessmentFixture(t)

	view, err := uc.Start(context.Background(), uuid.New(), skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(view.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(view.Questions))
	}
	if view.Status != string(assessment.StatusInProgress) {
		t.Fatalf("expected in_progress, got %s", view.Status)
	}
	for _, q := range view.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}
	}
	if len(questions.used) != 1 || len(questions.used[0]) != 20 {
		t.Fatalf("expected one usage increment covering 20 questions")
	}
}

func TestAssessmentUsecase_StartInactiveSkill(t *testing.T) {
	skillID := uuid.New()
	uc := NewAssessmentUsecase(
		assessment.NewEngine(assessment.DefaultConfig()),
		mockSkillRepo{skill: proficiency.Skill{ID: skillID, Name: "COBOL", Active: false}},
		&mockQuestionRepo{}, newMockAttemptRepo(), &mockProficiencyRepo{}, nil, nil, nil,
	)
	_, err := uc.Start(context.Background(), uuid.New(), skillID)
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestAssessmentUsecase_StartEmptyBank(t *testing.T) {
	skillID := uuid.New()
	uc := NewAssessmentUsecase(
		assessment.NewEngine(assessment.DefaultConfig()),
		mockSkillRepo{skill: proficiency.Skill{ID: skillID, Name: "Go", Active: true}},
		&mockQuestionRepo{}, newMockAttemptRepo(), &mockProficiencyRepo{}, nil, nil, nil,
	)
	_, err := uc.Start(context.Background(), uuid.New(), skillID)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAssessmentUsecase_GetForeignAttempt(t *testing.T) {
	uc, skillID, _, _, _, _ := newAssessmentFixture(t)

	view, err := uc.Start(context.Background(), uuid.New(), skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = uc.Get(context.Background(), uuid.New(), view.AttemptID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another subject, got %v", err)
	}
}

func TestAssessmentUsecase_FullRun(t *testing.T) {
	uc, skillID, questions, _, prof, notifier := newAssessmentFixture(t)
	subjectID := uuid.New()

	view, err := uc.Start(context.Background(), subjectID, skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Answer everything correctly.
	for _, q := range view.Questions {
		if err := uc.Answer(context.Background(), subjectID, view.AttemptID, q.QuestionID, "alpha"); err != nil {
			t.Fatalf("answer failed: %v", err)
		}
	}

	result, err := uc.Submit(context.Background(), subjectID, view.AttemptID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Status != string(assessment.StatusCompleted) {
		t.Fatalf("expected completed, got %s", result.Status)
	}
	if result.Percentage != 100 || !result.Passed {
		t.Fatalf("expected full score pass, got %v passed=%v", result.Percentage, result.Passed)
	}
	if result.ProficiencyLevel != 10 {
		t.Fatalf("expected proficiency 10, got %v", result.ProficiencyLevel)
	}

	if len(prof.upserted) != 1 {
		t.Fatalf("expected one proficiency upsert, got %d", len(prof.upserted))
	}
	rec := prof.upserted[0]
	if rec.Status != proficiency.StatusVerified || rec.Source != proficiency.SourceAssessment {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Value != 10 {
		t.Fatalf("expected verified value 10, got %v", rec.Value)
	}

	if len(questions.correct) != 1 || len(questions.correct[0]) != 20 {
		t.Fatalf("expected correct-count increment for all 20 questions")
	}
	if len(notifier.completed) != 1 || len(notifier.verified) != 1 {
		t.Fatalf("expected completion and verification events")
	}
}

func TestAssessmentUsecase_DoubleSubmit(t *testing.T) {
	uc, skillID, _, _, prof, _ := newAssessmentFixture(t)
	subjectID := uuid.New()

	view, err := uc.Start(context.Background(), subjectID, skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Submit(context.Background(), subjectID, view.AttemptID); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := uc.Submit(context.Background(), subjectID, view.AttemptID); !errors.Is(err, ErrStaleAttempt) {
		t.Fatalf("expected ErrStaleAttempt on second submit, got %v", err)
	}
	if len(prof.upserted) != 1 {
		t.Fatalf("second submit must not write proficiency again")
	}
}

func TestAssessmentUsecase_AnswerAfterSubmit(t *testing.T) {
	uc, skillID, _, _, _, _ := newAssessmentFixture(t)
	subjectID := uuid.New()

	view, err := uc.Start(context.Background(), subjectID, skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Submit(context.Background(), subjectID, view.AttemptID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	err = uc.Answer(context.Background(), subjectID, view.AttemptID, view.Questions[0].QuestionID, "alpha")
	if !errors.Is(err, ErrStaleAttempt) {
		t.Fatalf("expected ErrStaleAttempt for late answer, got %v", err)
	}
}

// completeOnLoad wraps the attempt store so a hook runs right after a
// caller takes its attempt snapshot, before any follow-up write.
type completeOnLoad struct {
	*mockAttemptRepo
	afterFind func()
}

func (r *completeOnLoad) FindByID(ctx context.Context, id uuid.UUID) (*assessment.Attempt, error) {
	a, err := r.mockAttemptRepo.FindByID(ctx, id)
	if err == nil && r.afterFind != nil {
		hook := r.afterFind
		r.afterFind = nil
		hook()
	}
	return a, err
}

func TestAssessmentUsecase_AnswerRacingSubmitRejected(t *testing.T) {
	skillID := uuid.New()
	questions := &mockQuestionRepo{bank: testBank(skillID)}
	store := newMockAttemptRepo()
	attempts := &completeOnLoad{mockAttemptRepo: store}
	prof := &mockProficiencyRepo{}

	uc := NewAssessmentUsecase(
		assessment.NewEngine(assessment.DefaultConfig()),
		mockSkillRepo{skill: proficiency.Skill{ID: skillID, Name: "Go", Active: true}},
		questions, attempts, prof, nil, nil, nil,
	)

	subjectID := uuid.New()
	view, err := uc.Start(context.Background(), subjectID, skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// The submit lands after Answer has loaded its attempt snapshot but
	// before the answer write reaches the store.
	attempts.afterFind = func() {
		if _, err := uc.Submit(context.Background(), subjectID, view.AttemptID); err != nil {
			t.Fatalf("interleaved submit failed: %v", err)
		}
	}

	err = uc.Answer(context.Background(), subjectID, view.AttemptID, view.Questions[0].QuestionID, "alpha")
	if !errors.Is(err, ErrStaleAttempt) {
		t.Fatalf("expected ErrStaleAttempt for answer racing completion, got %v", err)
	}

	stored, err := store.FindByID(context.Background(), view.AttemptID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stored.Status != assessment.StatusCompleted {
		t.Fatalf("expected completed attempt, got %s", stored.Status)
	}
	if len(stored.Answers) != 0 {
		t.Fatalf("late answer must not land on a completed attempt, got %v", stored.Answers)
	}
	if stored.RawScore != 0 {
		t.Fatalf("scored result must not move after completion, got raw=%d", stored.RawScore)
	}
	if len(prof.upserted) != 1 {
		t.Fatalf("expected exactly one proficiency write, got %d", len(prof.upserted))
	}
}

func TestAssessmentUsecase_StableQuestionOrder(t *testing.T) {
	uc, skillID, _, _, _, _ := newAssessmentFixture(t)
	subjectID := uuid.New()

	view, err := uc.Start(context.Background(), subjectID, skillID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	again, err := uc.Get(context.Background(), subjectID, view.AttemptID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(again.Questions) != len(view.Questions) {
		t.Fatalf("question count changed on re-render")
	}
	for i := range view.Questions {
		if view.Questions[i].QuestionID != again.Questions[i].QuestionID {
			t.Fatalf("question order changed on re-render")
		}
		for j := range view.Questions[i].Options {
			if view.Questions[i].Options[j] != again.Questions[i].Options[j] {
				t.Fatalf("option order changed on re-render")
			}
		}
	}
}
