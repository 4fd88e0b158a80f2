package dto

import "github.com/lac-hong-legacy/ven_growth/model"

type CreateChallengeRequest struct {
	SenderID       int64  `json:"sender_id" validate:"required,gt=0" example:"1"`
	SenderName     string `json:"sender_name" validate:"required,max=100" example:"Alex"`
	Subject        string `json:"subject" validate:"required,max=100" example:"Algebra"`
	SessionID      string `json:"session_id" validate:"max=100" example:"sess-42"`
	ChallengeType  string `json:"challenge_type" validate:"omitempty,oneof=beat_score complete_subject time_challenge" example:"beat_score"`
	RewardAmount   *int64 `json:"reward_amount" validate:"omitempty,gte=0,lte=10000" example:"50"`
	RecipientEmail string `json:"recipient_email" validate:"omitempty,email" example:"friend@example.com"`
	Message        string `json:"message" validate:"max=280"`
}

func (r CreateChallengeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateChallengeResponse struct {
	Link      string `json:"link"`
	Code      string `json:"code"`
	EmailSent bool   `json:"email_sent"`
}

type CompleteChallengeRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0" example:"2"`
	SessionID  string `json:"session_id" validate:"max=100" example:"sess-43"`
	FromUserID int64  `json:"from_user_id" validate:"gte=0" example:"1"`
}

func (r CompleteChallengeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteChallengeResponse struct {
	Code             string               `json:"code"`
	AlreadyCompleted bool                 `json:"already_completed"`
	Notifications    []model.Notification `json:"notifications"`
}
