package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type RewardHandler struct {
	rewardSvc RewardServiceInterface
}

func NewRewardHandler(rewardSvc RewardServiceInterface) *RewardHandler {
	return &RewardHandler{
		rewardSvc: rewardSvc,
	}
}

// @Summary Award gems
// @Description Credit gems (and twice as many points) to a user
// @Tags rewards
// @Accept json
// @Produce json
// @Param awardRequest body dto.AwardRequest true "Award details"
// @Success 200 {object} shared.Response{data=model.Notification}
// @Router /api/v1/rewards/award [post]
func (h *RewardHandler) Award(c *fiber.Ctx) error {
	var req dto.AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	notification := h.rewardSvc.AwardPoints(c.UserContext(), req.UserID, req.Amount, req.Reason)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", notification)
}

// @Summary Check streak milestone
// @Description Award the streak bonus when streak_days is a milestone not yet rewarded
// @Tags rewards
// @Accept json
// @Produce json
// @Param streakRequest body dto.StreakRequest true "Current streak"
// @Success 200 {object} shared.Response{data=dto.NotificationResponse}
// @Router /api/v1/rewards/streak [post]
func (h *RewardHandler) CheckStreak(c *fiber.Ctx) error {
	var req dto.StreakRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	notification := h.rewardSvc.CheckStreakMilestone(c.UserContext(), req.UserID, req.StreakDays)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NotificationResponse{Notification: notification})
}

// @Summary Check level up
// @Description Award the level-up bonus when current_points crosses into a new level
// @Tags rewards
// @Accept json
// @Produce json
// @Param levelUpRequest body dto.LevelUpRequest true "Points before and after"
// @Success 200 {object} shared.Response{data=dto.NotificationResponse}
// @Router /api/v1/rewards/level-up [post]
func (h *RewardHandler) CheckLevelUp(c *fiber.Ctx) error {
	var req dto.LevelUpRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	notification := h.rewardSvc.CheckLevelUp(c.UserContext(), req.UserID, req.PreviousPoints, req.CurrentPoints)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NotificationResponse{Notification: notification})
}

// @Summary Level progress
// @Description Level and progress percentage for a point total
// @Tags rewards
// @Produce json
// @Param points query int true "Point total"
// @Success 200 {object} shared.Response{data=model.LevelProgress}
// @Router /api/v1/rewards/level-progress [get]
func (h *RewardHandler) LevelProgress(c *fiber.Ctx) error {
	points, err := strconv.ParseInt(c.Query("points"), 10, 64)
	if err != nil {
		return shared.ResponseBadRequest(c, "points must be an integer")
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.rewardSvc.Progress(points))
}

// @Summary Get balance
// @Description Points, gems, longest streak and level for a user
// @Tags rewards
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} shared.Response{data=model.RewardBalance}
// @Router /api/v1/rewards/{userId} [get]
func (h *RewardHandler) GetBalance(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return shared.ResponseBadRequest(c, "userId must be a positive integer")
	}

	balance, err := h.rewardSvc.Balance(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", balance)
}
