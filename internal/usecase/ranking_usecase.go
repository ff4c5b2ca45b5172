package usecase

import (
	"context"
	"time"

	"skill-verify/internal/domain/proficiency"
	"skill-verify/internal/domain/ranking"
	"skill-verify/internal/infrastructure/cache"
	"skill-verify/internal/repository"
	"skill-verify/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RankedCandidate struct {
	SubjectID uuid.UUID         `json:"subject_id"`
	AppliedAt time.Time         `json:"applied_at"`
	Breakdown ranking.Breakdown `json:"breakdown"`
}

type RankingUsecase interface {
	RankCandidates(ctx context.Context, jobID uuid.UUID) ([]RankedCandidate, error)
}

type Ranking struct {
	jobs         repository.JobRepository
	requirements repository.RequirementRepository
	applications repository.ApplicationRepository
	proficiency  repository.ProficiencyRepository
	attempts     repository.AttemptRepository
	cache        *cache.Redis
	logger       *zap.Logger
	workers      int
}

func NewRankingUsecase(
	jobs repository.JobRepository,
	requirements repository.RequirementRepository,
	applications repository.ApplicationRepository,
	prof repository.ProficiencyRepository,
	attempts repository.AttemptRepository,
	c *cache.Redis,
	logger *zap.Logger,
	workers int,
) *Ranking {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Ranking{
		jobs:         jobs,
		requirements: requirements,
		applications: applications,
		proficiency:  prof,
		attempts:     attempts,
		cache:        c,
		logger:       logger,
		workers:      workers,
	}
}

func (u *Ranking) RankCandidates(ctx context.Context, jobID uuid.UUID) ([]RankedCandidate, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}

	key := cache.RankingKey(jobID)
	var cached []RankedCandidate
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		u.logger.Error("job lookup failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	reqs, err := u.requirements.FindByJobID(ctx, jobID)
	if err != nil {
		u.logger.Error("load requirements failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	apps, err := u.applications.FindByJobID(ctx, jobID)
	if err != nil {
		u.logger.Error("load applications failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if len(apps) == 0 {
		return []RankedCandidate{}, nil
	}

	subjectIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		subjectIDs = append(subjectIDs, a.SubjectID)
	}

	recordsBySubject, err := u.proficiency.FindBySubjectIDs(ctx, subjectIDs)
	if err != nil {
		u.logger.Error("load proficiency failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	attemptsBySubject, err := u.attempts.FindCompletedBySubjects(ctx, subjectIDs)
	if err != nil {
		u.logger.Error("load attempts failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	ranked := u.scoreAll(ctx, apps, reqs, recordsBySubject, attemptsBySubject)
	ranking.SortRanked(ranked)

	out := make([]RankedCandidate, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedCandidate{
			SubjectID: r.Candidate.ID,
			AppliedAt: r.Candidate.AppliedAt,
			Breakdown: r.Breakdown,
		})
	}

	if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
		u.logger.Warn("cache ranking failed", zap.Error(err))
	}
	return out, nil
}

// scoreAll fans candidate scoring out across the pool. Each task writes a
// distinct slot, so no synchronization is needed beyond the pool's drain.
func (u *Ranking) scoreAll(
	ctx context.Context,
	apps []repository.Application,
	reqs []proficiency.Requirement,
	recordsBySubject map[uuid.UUID][]proficiency.Record,
	attemptsBySubject map[uuid.UUID][]ranking.AttemptStat,
) []ranking.Ranked {
	out := make([]ranking.Ranked, len(apps))

	pool := worker.NewPool(u.workers, len(apps))
	for i, app := range apps {
		i, app := i, app
		pool.Submit(func(context.Context) error {
			c := ranking.Candidate{
				ID:        app.SubjectID,
				AppliedAt: app.AppliedAt,
				Profile:   proficiency.NewProfile(recordsBySubject[app.SubjectID]),
				Attempts:  attemptsBySubject[app.SubjectID],
			}
			out[i] = ranking.Ranked{Candidate: c, Breakdown: ranking.Score(c, reqs)}
			return nil
		})
	}
	pool.Close()

	for res := range pool.Run(ctx) {
		if res.Err != nil {
			u.logger.Warn("candidate scoring failed", zap.Error(res.Err))
		}
	}
	return out
}
