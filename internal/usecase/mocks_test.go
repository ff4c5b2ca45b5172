package usecase

import (
	"context"
	"time"

	"skill-verify/internal/assessment"
	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/domain/ranking"
	"skill-verify/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	job    repository.Job
	exists bool
	err    error
}

func (m mockJobRepo) FindByID(context.Context, uuid.UUID) (repository.Job, error) {
	if m.err != nil {
		return repository.Job{}, m.err
	}
	if !m.exists {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return m.job, nil
}

func (m mockJobRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, m.err
}

type mockRequirementRepo struct {
	reqs []proficiency.Requirement
	err  error
}

func (m mockRequirementRepo) FindByJobID(context.Context, uuid.UUID) ([]proficiency.Requirement, error) {
	return m.reqs, m.err
}

type mockCandidateRepo struct {
	candidate repository.Candidate
	err       error
}

func (m mockCandidateRepo) FindBySubjectID(_ context.Context, subjectID uuid.UUID) (repository.Candidate, error) {
	if m.err != nil {
		return repository.Candidate{}, m.err
	}
	c := m.candidate
	c.SubjectID = subjectID
	return c, nil
}

type mockProficiencyRepo struct {
	records   map[uuid.UUID][]proficiency.Record
	upserted  []proficiency.Record
	err       error
	upsertErr error
}

func (m *mockProficiencyRepo) FindBySubjectID(_ context.Context, subjectID uuid.UUID) ([]proficiency.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[subjectID], nil
}

func (m *mockProficiencyRepo) FindBySubjectIDs(_ context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]proficiency.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]proficiency.Record)
	for _, id := range subjectIDs {
		if recs, ok := m.records[id]; ok {
			out[id] = recs
		}
	}
	return out, nil
}

func (m *mockProficiencyRepo) Upsert(_ context.Context, rec proficiency.Record) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, rec)
	return nil
}

type mockApplicationRepo struct {
	apps []repository.Application
	err  error
}

func (m mockApplicationRepo) FindByJobID(context.Context, uuid.UUID) ([]repository.Application, error) {
	return m.apps, m.err
}

type mockSkillRepo struct {
	skill proficiency.Skill
	err   error
}

func (m mockSkillRepo) FindByID(context.Context, uuid.UUID) (proficiency.Skill, error) {
	if m.err != nil {
		return proficiency.Skill{}, m.err
	}
	return m.skill, nil
}

func (m mockSkillRepo) FindByName(context.Context, string) (proficiency.Skill, error) {
	return m.skill, m.err
}

func (m mockSkillRepo) List(context.Context) ([]proficiency.Skill, error) {
	return []proficiency.Skill{m.skill}, m.err
}

func (m mockSkillRepo) Create(_ context.Context, s proficiency.Skill) (proficiency.Skill, error) {
	return s, m.err
}

func (m mockSkillRepo) Deactivate(context.Context, uuid.UUID) error { return m.err }

type mockQuestionRepo struct {
	bank      []assessment.Question
	used      [][]uuid.UUID
	correct   [][]uuid.UUID
	err       error
	createErr error
}

func (m *mockQuestionRepo) FindBySkillID(context.Context, uuid.UUID) ([]assessment.Question, error) {
	return m.bank, m.err
}

func (m *mockQuestionRepo) Create(context.Context, assessment.Question) error { return m.createErr }

func (m *mockQuestionRepo) IncrementUsage(_ context.Context, ids []uuid.UUID) error {
	m.used = append(m.used, ids)
	return nil
}

func (m *mockQuestionRepo) IncrementCorrect(_ context.Context, ids []uuid.UUID) error {
	m.correct = append(m.correct, ids)
	return nil
}

// mockAttemptRepo keeps attempts in memory and mirrors the persistence
// semantics the usecase depends on: answer upserts and the guarded
// completion transition.
type mockAttemptRepo struct {
	attempts map[uuid.UUID]*assessment.Attempt
	stats    map[uuid.UUID][]ranking.AttemptStat
	err      error
}

func newMockAttemptRepo() *mockAttemptRepo {
	return &mockAttemptRepo{attempts: make(map[uuid.UUID]*assessment.Attempt)}
}

func (m *mockAttemptRepo) Create(_ context.Context, a *assessment.Attempt) error {
	if m.err != nil {
		return m.err
	}
	cp := *a
	cp.Answers = make(map[uuid.UUID]string)
	m.attempts[a.ID] = &cp
	return nil
}

func (m *mockAttemptRepo) FindByID(_ context.Context, id uuid.UUID) (*assessment.Attempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.attempts[id]
	if !ok {
		return nil, assessment.ErrAttemptNotFound
	}
	cp := *a
	cp.Answers = make(map[uuid.UUID]string, len(a.Answers))
	for k, v := range a.Answers {
		cp.Answers[k] = v
	}
	return &cp, nil
}

func (m *mockAttemptRepo) SaveAnswer(_ context.Context, attemptID, questionID uuid.UUID, answer string, _ time.Time) error {
	a, ok := m.attempts[attemptID]
	if !ok {
		return assessment.ErrAttemptNotFound
	}
	if a.Status != assessment.StatusInProgress {
		return assessment.ErrStaleAttempt
	}
	a.Answers[questionID] = answer
	return nil
}

func (m *mockAttemptRepo) MarkCompleted(_ context.Context, a *assessment.Attempt) error {
	stored, ok := m.attempts[a.ID]
	if !ok {
		return assessment.ErrAttemptNotFound
	}
	if stored.Status != assessment.StatusInProgress {
		return assessment.ErrStaleAttempt
	}
	cp := *a
	m.attempts[a.ID] = &cp
	return nil
}

func (m *mockAttemptRepo) FindCompletedBySubjects(_ context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID][]ranking.AttemptStat, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]ranking.AttemptStat)
	for _, id := range subjectIDs {
		if stats, ok := m.stats[id]; ok {
			out[id] = stats
		}
	}
	return out, nil
}

type mockNotifier struct {
	completed []uuid.UUID
	verified  []proficiency.Record
}

func (m *mockNotifier) AssessmentCompleted(_, attemptID, _ uuid.UUID, _ float64, _ bool) {
	m.completed = append(m.completed, attemptID)
}

func (m *mockNotifier) ProficiencyVerified(rec proficiency.Record) {
	m.verified = append(m.verified, rec)
}
