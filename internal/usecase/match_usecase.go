package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-verify/internal/domain/match"
	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/domain/similarity"
	"skill-verify/internal/infrastructure/cache"
	"skill-verify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchResult struct {
	SubjectID uuid.UUID       `json:"subject_id"`
	JobID     uuid.UUID       `json:"job_id"`
	Breakdown match.Breakdown `json:"breakdown"`
}

type MatchUsecase interface {
	CalculateMatch(ctx context.Context, subjectID, jobID uuid.UUID) (MatchResult, error)
}

type Match struct {
	jobs         repository.JobRepository
	requirements repository.RequirementRepository
	candidates   repository.CandidateRepository
	proficiency  repository.ProficiencyRepository
	cache        *cache.Redis
	logger       *zap.Logger
}

func NewMatchUsecase(
	jobs repository.JobRepository,
	requirements repository.RequirementRepository,
	candidates repository.CandidateRepository,
	prof repository.ProficiencyRepository,
	c *cache.Redis,
	logger *zap.Logger,
) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Match{
		jobs:         jobs,
		requirements: requirements,
		candidates:   candidates,
		proficiency:  prof,
		cache:        c,
		logger:       logger,
	}
}

func (u *Match) CalculateMatch(ctx context.Context, subjectID, jobID uuid.UUID) (MatchResult, error) {
	if subjectID == uuid.Nil {
		return MatchResult{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return MatchResult{}, ErrJobNotFound
	}

	key := cache.MatchKey(subjectID, jobID)
	var cached MatchResult
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return MatchResult{}, ErrJobNotFound
		}
		u.logger.Error("load job failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return MatchResult{}, ErrInternal
	}

	reqs, err := u.requirements.FindByJobID(ctx, jobID)
	if err != nil {
		u.logger.Error("load requirements failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return MatchResult{}, ErrInternal
	}

	candidate, err := u.candidates.FindBySubjectID(ctx, subjectID)
	if err != nil {
		u.logger.Error("load candidate failed", zap.String("subject_id", subjectID.String()), zap.Error(err))
		return MatchResult{}, ErrInternal
	}

	records, err := u.proficiency.FindBySubjectID(ctx, subjectID)
	if err != nil {
		u.logger.Error("load proficiency failed", zap.String("subject_id", subjectID.String()), zap.Error(err))
		return MatchResult{}, ErrInternal
	}
	profile := proficiency.NewProfile(records)

	breakdown := match.Score(
		match.CandidateProfile{
			Skills:          similarity.NewSet(profile.SkillIDs()...),
			ProfileText:     candidate.ProfileText,
			ExperienceYears: candidate.ExperienceYears,
			Location:        candidate.Location,
			JobType:         candidate.JobType,
			Industry:        candidate.Industry,
			ExpectedSalary:  candidate.ExpectedSalary,
		},
		match.JobPosting{
			Skills:          requirementSet(reqs),
			DescriptionText: strings.TrimSpace(job.Title + " " + job.Description),
			RequiredYears:   job.RequiredYears,
			Location:        job.Location,
			JobType:         job.JobType,
			Industry:        job.Industry,
			SalaryMin:       job.SalaryMin,
			SalaryMax:       job.SalaryMax,
		},
	)

	result := MatchResult{SubjectID: subjectID, JobID: jobID, Breakdown: breakdown}
	if err := u.cache.SetJSON(ctx, key, result, 0); err != nil {
		u.logger.Warn("cache match result failed", zap.Error(err))
	}
	return result, nil
}

func requirementSet(reqs []proficiency.Requirement) similarity.Set {
	out := make(similarity.Set, len(reqs))
	for _, r := range reqs {
		out[r.SkillID] = struct{}{}
	}
	return out
}
