package handler

import (
	"errors"
	"time"

	"skill-graph/internal/delivery/http/dto"
	"skill-graph/internal/delivery/http/middleware"
	"skill-graph/internal/delivery/http/response"
	"skill-graph/internal/domain/learning"
	"skill-graph/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LearningPathHandler struct {
	uc usecase.LearningPathUsecase
}

func NewLearningPathHandler(uc usecase.LearningPathUsecase) *LearningPathHandler {
	return &LearningPathHandler{uc: uc}
}

func (h *LearningPathHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/learning-paths", h.Generate)
	r.Post("/learning-paths/batch", h.GenerateBatch)
}

func (h *LearningPathHandler) Generate(c fiber.Ctx) error {
	var req dto.LearningPathRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	params := usecase.LearningPathParams{
		TargetSkill:   req.TargetSkill,
		CurrentSkills: req.CurrentSkills,
		Weeks:         req.Weeks,
		HoursPerWeek:  req.HoursPerWeek,
	}
	if req.StartDate != "" {
		start, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid start_date", nil, err)
		}
		params.StartDate = &start
	}

	res, err := h.uc.Generate(c.Context(), params)
	if err != nil {
		return mapLearningPathUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *LearningPathHandler) GenerateBatch(c fiber.Ctx) error {
	var req dto.LearningPathBatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.GenerateBatch(c.Context(), usecase.BatchParams{
		Skills:        req.Skills,
		CurrentSkills: req.CurrentSkills,
		Weeks:         req.Weeks,
		HoursPerWeek:  req.HoursPerWeek,
	})
	if err != nil {
		return mapLearningPathUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapLearningPathUsecaseError(err error) error {
	var cycle *learning.CycleError
	switch {
	case errors.As(err, &cycle):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "prerequisite cycle in learning graph",
			fiber.Map{"skill": cycle.Skill, "nodes": cycle.Nodes}, err)
	case errors.Is(err, learning.ErrPrerequisiteCycle):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "prerequisite cycle in learning graph", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
