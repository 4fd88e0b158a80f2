package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type AIHandler struct {
	aiSvc AIServiceInterface
}

func NewAIHandler(aiSvc AIServiceInterface) *AIHandler {
	return &AIHandler{
		aiSvc: aiSvc,
	}
}

// @Summary AI loop recommendation
// @Description Ask the LLM which viral loop to run. Falls back to rule-based logic when it is unavailable.
// @Tags ai
// @Accept json
// @Produce json
// @Param orchestrateRequest body dto.OrchestrateRequest true "Event, user context and optional session"
// @Success 200 {object} shared.Response{data=model.AIOrchestrationResult}
// @Router /api/v1/ai/orchestrate [post]
func (h *AIHandler) Orchestrate(c *fiber.Ctx) error {
	var req dto.OrchestrateRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	result := h.aiSvc.AnalyzeAndOrchestrate(c.UserContext(), req.Event, req.UserContext, req.Session)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Session insights
// @Description Strengths, gaps and recommendations for a practice session
// @Tags ai
// @Accept json
// @Produce json
// @Param analyzeSessionRequest body dto.AnalyzeSessionRequest true "Session"
// @Success 200 {object} shared.Response{data=dto.AnalyzeSessionResponse}
// @Router /api/v1/ai/analyze-session [post]
func (h *AIHandler) AnalyzeSession(c *fiber.Ctx) error {
	var req dto.AnalyzeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	res := h.aiSvc.AnalyzeSession(c.UserContext(), req.Session)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.AnalyzeSessionResponse{
		Insights: res.Value,
		Fallback: res.IsFallback(),
	})
}

// @Summary Personalized invite copy
// @Description Short share message for a loop type
// @Tags ai
// @Accept json
// @Produce json
// @Param personalizeMessageRequest body dto.PersonalizeMessageRequest true "Personalization context"
// @Success 200 {object} shared.Response{data=dto.PersonalizeMessageResponse}
// @Router /api/v1/ai/personalize-message [post]
func (h *AIHandler) PersonalizeMessage(c *fiber.Ctx) error {
	var req dto.PersonalizeMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	res := h.aiSvc.PersonalizeMessage(c.UserContext(), req.Context)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.PersonalizeMessageResponse{
		Message:  res.Value,
		Fallback: res.IsFallback(),
	})
}
