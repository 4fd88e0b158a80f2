package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type LinkHandler struct {
	linkSvc LinkServiceInterface
}

func NewLinkHandler(linkSvc LinkServiceInterface) *LinkHandler {
	return &LinkHandler{
		linkSvc: linkSvc,
	}
}

// @Summary Create a buddy challenge link
// @Description Encode a challenge link, record link_created and optionally email the recipient
// @Tags invite
// @Accept json
// @Produce json
// @Param createChallengeRequest body dto.CreateChallengeRequest true "Challenge details"
// @Success 201 {object} shared.Response{data=dto.CreateChallengeResponse}
// @Router /api/v1/invite [post]
func (h *LinkHandler) CreateChallenge(c *fiber.Ctx) error {
	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.linkSvc.CreateChallenge(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Challenge created", resp)
}

// @Summary Parse a challenge link
// @Description Decode a challenge link and record link_clicked
// @Tags invite
// @Produce json
// @Param url query string true "Full challenge URL"
// @Success 200 {object} shared.Response{data=model.ChallengeLink}
// @Router /api/v1/invite/parse [get]
func (h *LinkHandler) ParseChallenge(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return shared.ResponseBadRequest(c, "url is required")
	}

	link, err := h.linkSvc.OpenChallenge(c.UserContext(), rawURL)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", link)
}

// @Summary Complete a challenge
// @Description Convert a challenge once. Repeat calls report already_completed and award nothing.
// @Tags invite
// @Accept json
// @Produce json
// @Param code path string true "Challenge code"
// @Param completeChallengeRequest body dto.CompleteChallengeRequest true "Completing user"
// @Success 200 {object} shared.Response{data=dto.CompleteChallengeResponse}
// @Router /api/v1/invite/{code}/complete [post]
func (h *LinkHandler) CompleteChallenge(c *fiber.Ctx) error {
	var req dto.CompleteChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.linkSvc.CompleteChallenge(c.UserContext(), c.Params("code"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
