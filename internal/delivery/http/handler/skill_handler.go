package handler

import (
	"errors"

	"skill-graph/internal/delivery/http/dto"
	"skill-graph/internal/delivery/http/middleware"
	"skill-graph/internal/delivery/http/response"
	"skill-graph/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/skills")
	grp.Post("/normalize", h.Normalize)
	grp.Post("/match", h.Match)
	grp.Post("/similarity", h.Similarity)
}

func (h *SkillHandler) Normalize(c fiber.Ctx) error {
	var req dto.NormalizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NormalizeResponse{Skills: h.uc.Normalize(req.Skills)})
}

func (h *SkillHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Match(req.Skill)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Similarity(c fiber.Ctx) error {
	var req dto.SimilarityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SimilarityResponse{Similarity: h.uc.Similarity(req.A, req.B)})
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	return dto.Validate(req)
}
