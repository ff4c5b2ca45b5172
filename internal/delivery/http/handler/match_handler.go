package handler

import (
	"errors"

	"skill-verify/internal/delivery/http/dto"
	"skill-verify/internal/delivery/http/middleware"
	"skill-verify/internal/pkg/response"
	"skill-verify/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/:job_id/match", h.GetMatch)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.CalculateMatch(c.Context(), subjectID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.MatchResponse{
		JobID: res.JobID,
		Breakdown: dto.MatchBreakdownResponse{
			SkillScore:      res.Breakdown.SkillScore,
			TextScore:       res.Breakdown.TextScore,
			PreferenceScore: res.Breakdown.PreferenceScore,
			Total:           res.Breakdown.Total,
		},
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// mapUsecaseError translates the shared usecase sentinels into transport
// errors. Handler-specific sentinels are mapped before falling through to
// this.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrAttemptNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assessment attempt not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
