package usecase

import (
	"context"

	"skill-verify/internal/domain/gap"
	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GapUsecase interface {
	AnalyzeGaps(ctx context.Context, subjectID, jobID uuid.UUID) (gap.Result, error)
}

type Gap struct {
	jobs         repository.JobRepository
	requirements repository.RequirementRepository
	proficiency  repository.ProficiencyRepository
	logger       *zap.Logger
}

func NewGapUsecase(
	jobs repository.JobRepository,
	requirements repository.RequirementRepository,
	prof repository.ProficiencyRepository,
	logger *zap.Logger,
) *Gap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gap{jobs: jobs, requirements: requirements, proficiency: prof, logger: logger}
}

func (u *Gap) AnalyzeGaps(ctx context.Context, subjectID, jobID uuid.UUID) (gap.Result, error) {
	if subjectID == uuid.Nil {
		return gap.Result{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return gap.Result{}, ErrJobNotFound
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		u.logger.Error("job lookup failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return gap.Result{}, ErrInternal
	}
	if !exists {
		return gap.Result{}, ErrJobNotFound
	}

	reqs, err := u.requirements.FindByJobID(ctx, jobID)
	if err != nil {
		u.logger.Error("load requirements failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return gap.Result{}, ErrInternal
	}
	if err := proficiency.ValidateRequirements(reqs); err != nil {
		u.logger.Error("invalid requirement row", zap.String("job_id", jobID.String()), zap.Error(err))
		return gap.Result{}, ErrInternal
	}

	records, err := u.proficiency.FindBySubjectID(ctx, subjectID)
	if err != nil {
		u.logger.Error("load proficiency failed", zap.String("subject_id", subjectID.String()), zap.Error(err))
		return gap.Result{}, ErrInternal
	}

	return gap.Analyze(reqs, proficiency.NewProfile(records)), nil
}
