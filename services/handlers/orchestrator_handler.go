package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type OrchestratorHandler struct {
	orchestratorSvc OrchestratorServiceInterface
}

func NewOrchestratorHandler(orchestratorSvc OrchestratorServiceInterface) *OrchestratorHandler {
	return &OrchestratorHandler{
		orchestratorSvc: orchestratorSvc,
	}
}

// @Summary Select a viral loop
// @Description Run the rule table for an event without touching throttle or cooldown state
// @Tags orchestrator
// @Accept json
// @Produce json
// @Param selectLoopRequest body dto.SelectLoopRequest true "Event and payload"
// @Success 200 {object} shared.Response{data=dto.SelectLoopResponse}
// @Router /api/v1/orchestrator/select [post]
func (h *OrchestratorHandler) SelectLoop(c *fiber.Ctx) error {
	var req dto.SelectLoopRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp := dto.SelectLoopResponse{}
	if loopType, ok := h.orchestratorSvc.SelectLoop(req.Event, model.TriggerContext{Event: req.Event, Data: req.Data}); ok {
		resp.LoopType = &loopType
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Decide whether a loop may trigger
// @Description Apply the daily cap and per-loop cooldown. A triggered decision consumes quota.
// @Tags orchestrator
// @Accept json
// @Produce json
// @Param decideRequest body dto.DecideRequest true "User and loop type"
// @Success 200 {object} shared.Response{data=model.LoopTriggerDecision}
// @Router /api/v1/orchestrator/decide [post]
func (h *OrchestratorHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	decision := h.orchestratorSvc.Decide(c.UserContext(), req.UserID, model.LoopType(req.LoopType), req.Event)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", decision)
}

// @Summary Evaluate an event
// @Description Select a loop for the event and, when one matches, decide whether it triggers
// @Tags orchestrator
// @Accept json
// @Produce json
// @Param evaluateRequest body dto.EvaluateRequest true "User, event and payload"
// @Success 200 {object} shared.Response{data=model.LoopTriggerDecision}
// @Router /api/v1/orchestrator/evaluate [post]
func (h *OrchestratorHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	decision := h.orchestratorSvc.Evaluate(c.UserContext(), req.UserID, req.Event, model.TriggerContext{
		UserID: req.UserID,
		Event:  req.Event,
		Data:   req.Data,
	})
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", decision)
}
