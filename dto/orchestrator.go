package dto

import "github.com/lac-hong-legacy/ven_growth/model"

type SelectLoopRequest struct {
	Event string         `json:"event" validate:"required,max=100" example:"session_completed"`
	Data  map[string]any `json:"data"`
}

func (r SelectLoopRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SelectLoopResponse struct {
	LoopType *model.LoopType `json:"loop_type"`
}

type DecideRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0" example:"1"`
	LoopType string `json:"loop_type" validate:"required,loop_type" example:"buddy_challenge"`
	Event    string `json:"event" validate:"max=100" example:"session_completed"`
}

func (r DecideRequest) Validate() error {
	return GetValidator().Struct(r)
}

type EvaluateRequest struct {
	UserID int64          `json:"user_id" validate:"required,gt=0" example:"1"`
	Event  string         `json:"event" validate:"required,max=100" example:"session_completed"`
	Data   map[string]any `json:"data"`
}

func (r EvaluateRequest) Validate() error {
	return GetValidator().Struct(r)
}
