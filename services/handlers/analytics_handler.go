package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type AnalyticsHandler struct {
	funnelSvc FunnelServiceInterface
}

func NewAnalyticsHandler(funnelSvc FunnelServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		funnelSvc: funnelSvc,
	}
}

func queryLimit(c *fiber.Ctx, def, max int) int {
	limit := def
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= max {
			limit = parsed
		}
	}
	return limit
}

// @Summary Decision log
// @Description Most recent agent decisions, newest first
// @Tags analytics
// @Produce json
// @Param limit query int false "Limit results (default 50)"
// @Success 200 {object} shared.Response{data=dto.DecisionLogResponse}
// @Router /api/v1/analytics/decisions [get]
func (h *AnalyticsHandler) GetDecisions(c *fiber.Ctx) error {
	limit := queryLimit(c, 50, 1000)

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.DecisionLogResponse{
		Decisions: h.funnelSvc.Decisions(limit),
	})
}

// @Summary Funnel summary
// @Description Event counts, conversion rate, k-factor and the most recent funnel events
// @Tags analytics
// @Produce json
// @Param limit query int false "Events to include (default 50)"
// @Success 200 {object} shared.Response{data=dto.FunnelSummaryResponse}
// @Router /api/v1/analytics/funnel [get]
func (h *AnalyticsHandler) GetFunnel(c *fiber.Ctx) error {
	limit := queryLimit(c, 50, 1000)

	summary := dto.NewFunnelSummary(h.funnelSvc.FunnelCounts(), h.funnelSvc.FunnelEvents(limit))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", summary)
}

// @Summary Track funnel event
// @Description Record a funnel event with an optional JSON payload
// @Tags analytics
// @Accept json
// @Produce json
// @Param trackFunnelEventRequest body dto.TrackFunnelEventRequest true "Event name and payload"
// @Success 201 {object} shared.Response{data=model.FunnelEvent}
// @Router /api/v1/analytics/funnel [post]
func (h *AnalyticsHandler) TrackFunnelEvent(c *fiber.Ctx) error {
	var req dto.TrackFunnelEventRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	event, err := h.funnelSvc.TrackFunnelEvent(c.UserContext(), model.FunnelEventName(req.Name), req.Payload)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, event)
}
