package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type SessionHandler struct {
	sessionSvc SessionServiceInterface
}

func NewSessionHandler(sessionSvc SessionServiceInterface) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
	}
}

// @Summary Complete a practice session
// @Description Award session rewards, check milestones, convert an invite code and evaluate the session_completed loop
// @Tags sessions
// @Accept json
// @Produce json
// @Param completeSessionRequest body dto.CompleteSessionRequest true "Session results"
// @Success 200 {object} shared.Response{data=dto.CompleteSessionResponse}
// @Router /api/v1/sessions/complete [post]
func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	var req dto.CompleteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.sessionSvc.CompleteSession(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Session completed", resp)
}
