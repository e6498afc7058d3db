package handler

import (
	"errors"

	"skill-graph/internal/delivery/http/dto"
	"skill-graph/internal/delivery/http/middleware"
	"skill-graph/internal/delivery/http/response"
	"skill-graph/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobScoreHandler struct {
	uc usecase.ScoringUsecase
}

func NewJobScoreHandler(uc usecase.ScoringUsecase) *JobScoreHandler {
	return &JobScoreHandler{uc: uc}
}

func (h *JobScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Group("/jobs").Post("/score", h.Score)
}

func (h *JobScoreHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreJobsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Score(c.Context(), usecase.ScoreParams{
		UserSkills:      req.UserSkills,
		YearsExperience: req.YearsExperience,
		Jobs:            req.Postings(),
		Query:           req.Query,
		Limit:           req.Limit,
	})
	if err != nil {
		return mapScoringUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ScoreJobsResponse{
		UserSkills: res.UserSkills,
		CorpusSize: res.CorpusSize,
		Jobs:       res.Jobs,
		Weights:    res.Weights,
	})
}

func mapScoringUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid scoring request", nil, err)
	case errors.Is(err, usecase.ErrCorpusUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "job corpus unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
