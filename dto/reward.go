package dto

import "github.com/lac-hong-legacy/ven_growth/model"

type AwardRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0" example:"1"`
	Amount int64  `json:"amount" validate:"gte=0,lte=100000" example:"50"`
	Reason string `json:"reason" validate:"required,max=200" example:"Buddy challenge completed!"`
}

func (r AwardRequest) Validate() error {
	return GetValidator().Struct(r)
}

type StreakRequest struct {
	UserID     int64 `json:"user_id" validate:"required,gt=0" example:"1"`
	StreakDays int64 `json:"streak_days" validate:"gte=0" example:"7"`
}

func (r StreakRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LevelUpRequest struct {
	UserID         int64 `json:"user_id" validate:"required,gt=0" example:"1"`
	PreviousPoints int64 `json:"previous_points" validate:"gte=0" example:"950"`
	CurrentPoints  int64 `json:"current_points" validate:"gte=0,gtefield=PreviousPoints" example:"1050"`
}

func (r LevelUpRequest) Validate() error {
	return GetValidator().Struct(r)
}

// NotificationResponse wraps an optional notification; Notification is null when nothing fired.
type NotificationResponse struct {
	Notification *model.Notification `json:"notification"`
}
