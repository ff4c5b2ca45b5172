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

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assessments")
	grp.Post("/", h.Start)
	grp.Get("/:attempt_id", h.Get)
	grp.Post("/:attempt_id/answers", h.Answer)
	grp.Post("/:attempt_id/submit", h.Submit)
}

func (h *AssessmentHandler) Start(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.StartAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.SkillID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "skill_id is required", nil, nil)
	}

	view, err := h.uc.Start(c.Context(), subjectID, req.SkillID)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toAttemptResponse(view))
}

func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	attemptID, err := uuid.Parse(c.Params("attempt_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.Get(c.Context(), subjectID, attemptID)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toAttemptResponse(view))
}

func (h *AssessmentHandler) Answer(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	attemptID, err := uuid.Parse(c.Params("attempt_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SubmitAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.QuestionID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "question_id is required", nil, nil)
	}

	if err := h.uc.Answer(c.Context(), subjectID, attemptID, req.QuestionID, req.Answer); err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	subjectID, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	attemptID, err := uuid.Parse(c.Params("attempt_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.Submit(c.Context(), subjectID, attemptID)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toAttemptResponse(view))
}

func mapAssessmentError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoQuestions):
		return middleware.NewAppError(fiber.StatusConflict, "No questions available for this skill", nil, err)
	case errors.Is(err, usecase.ErrStaleAttempt):
		return middleware.NewAppError(fiber.StatusConflict, "Assessment attempt already completed", nil, err)
	default:
		return mapUsecaseError(err)
	}
}

func toAttemptResponse(v usecase.AttemptView) dto.AttemptResponse {
	out := dto.AttemptResponse{
		AttemptID:        v.AttemptID,
		SkillID:          v.SkillID,
		Status:           v.Status,
		Questions:        make([]dto.AttemptQuestionResponse, 0, len(v.Questions)),
		StartedAt:        v.StartedAt,
		CompletedAt:      v.CompletedAt,
		RawScore:         v.RawScore,
		MaxScore:         v.MaxScore,
		Percentage:       v.Percentage,
		ProficiencyLevel: v.ProficiencyLevel,
		Passed:           v.Passed,
	}
	for _, q := range v.Questions {
		out.Questions = append(out.Questions, dto.AttemptQuestionResponse{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Points:     q.Points,
			Answered:   q.Answered,
		})
	}
	return out
}
