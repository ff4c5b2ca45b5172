package handler

import (
	"skill-verify/internal/delivery/http/dto"
	"skill-verify/internal/delivery/http/middleware"
	"skill-verify/internal/pkg/response"
	"skill-verify/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/:job_id/gaps", h.GetGaps)
}

func (h *GapHandler) GetGaps(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.AnalyzeGaps(c.Context(), subjectID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.GapAnalysisResponse{
		JobID:        jobID,
		MatchedCount: res.MatchedCount,
		PartialCount: res.PartialCount,
		MissingCount: res.MissingCount,
		MatchScore:   res.MatchScore,
		Entries:      make([]dto.GapEntryResponse, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, dto.GapEntryResponse{
			SkillID:        e.Requirement.SkillID,
			SkillName:      e.Requirement.SkillName,
			Required:       e.Requirement.Required,
			Have:           e.Have,
			HaveStatus:     string(e.HaveStatus),
			Classification: string(e.Classification),
			Gap:            e.Gap,
			Priority:       string(e.Priority),
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
