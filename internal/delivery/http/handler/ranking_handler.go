package handler

import (
	"skill-verify/internal/delivery/http/dto"
	"skill-verify/internal/delivery/http/middleware"
	"skill-verify/internal/pkg/jwt"
	"skill-verify/internal/pkg/response"
	"skill-verify/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RankingHandler struct {
	uc usecase.RankingUsecase
}

func NewRankingHandler(uc usecase.RankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

func (h *RankingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/:job_id/candidates", h.GetCandidates)
}

// GetCandidates returns the scored applicant ranking for one job.
// Recruiter only: candidates never see each other's scores.
func (h *RankingHandler) GetCandidates(c fiber.Ctx) error {
	if _, ok := middleware.SubjectID(c); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)
	if role != jwt.RoleRecruiter {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ranked, err := h.uc.RankCandidates(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.RankingResponse{
		JobID:      jobID,
		Candidates: make([]dto.RankedCandidateResponse, 0, len(ranked)),
	}
	for i, r := range ranked {
		out.Candidates = append(out.Candidates, dto.RankedCandidateResponse{
			Rank:      i + 1,
			SubjectID: r.SubjectID,
			AppliedAt: r.AppliedAt,
			Breakdown: dto.RankingBreakdownResponse{
				SkillMatch:     r.Breakdown.SkillMatch,
				VerifiedRatio:  r.Breakdown.VerifiedRatio,
				AvgAssessment:  r.Breakdown.AvgAssessment,
				FirstTryPass:   r.Breakdown.FirstTryPass,
				ProficiencyFit: r.Breakdown.ProficiencyFit,
				Total:          r.Breakdown.Total,
			},
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
