package app

import (
	"context"
	"time"

	"skill-verify/internal/assessment"
	"skill-verify/internal/config"
	"skill-verify/internal/database"
	"skill-verify/internal/database/migration"
	dbpostgres "skill-verify/internal/database/postgres"
	"skill-verify/internal/database/seeder"
	"skill-verify/internal/infrastructure/cache"
	"skill-verify/internal/pkg/jwt"
	"skill-verify/internal/repository"
	"skill-verify/internal/usecase"
	"skill-verify/internal/ws"

	"go.uber.org/zap"
)

// Container wires infrastructure, repositories and usecases. Everything
// downstream receives interfaces; the container is the only place that
// knows the concrete implementations.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub

	Skills       repository.SkillRepository
	Questions    repository.QuestionRepository
	Attempts     repository.AttemptRepository
	Proficiency  repository.ProficiencyRepository
	Jobs         repository.JobRepository
	Requirements repository.RequirementRepository
	Candidates   repository.CandidateRepository
	Applications repository.ApplicationRepository

	MatchUC      usecase.MatchUsecase
	GapUC        usecase.GapUsecase
	RankingUC    usecase.RankingUsecase
	AssessmentUC usecase.AssessmentUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.RunSeeders {
		if err := seeder.Run(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
		Hub:    ws.NewHub(logger),
	}

	c.Skills = repository.NewPostgresSkillRepository(db)
	c.Questions = repository.NewPostgresQuestionRepository(db)
	c.Attempts = repository.NewPostgresAttemptRepository(db)
	c.Proficiency = repository.NewPostgresProficiencyRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Requirements = repository.NewPostgresRequirementRepository(db)
	c.Candidates = repository.NewPostgresCandidateRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)

	engine := assessment.NewEngine(assessment.Config{
		TotalQuestions: cfg.Assessment.TotalQuestions,
		PassThreshold:  cfg.Assessment.PassThreshold,
	})
	notifier := ws.NewNotifier(c.Hub)

	c.MatchUC = usecase.NewMatchUsecase(c.Jobs, c.Requirements, c.Candidates, c.Proficiency, c.Cache, logger)
	c.GapUC = usecase.NewGapUsecase(c.Jobs, c.Requirements, c.Proficiency, logger)
	c.RankingUC = usecase.NewRankingUsecase(c.Jobs, c.Requirements, c.Applications, c.Proficiency, c.Attempts, c.Cache, logger, 8)
	c.AssessmentUC = usecase.NewAssessmentUsecase(engine, c.Skills, c.Questions, c.Attempts, c.Proficiency, c.Cache, notifier, logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
