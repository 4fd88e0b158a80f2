package dto

import "github.com/lac-hong-legacy/ven_growth/model"

type CompleteSessionRequest struct {
	UserID            int64    `json:"user_id" validate:"required,gt=0" example:"1"`
	Role              string   `json:"role" validate:"omitempty,oneof=student parent tutor" example:"student"`
	SessionID         string   `json:"session_id" validate:"max=100" example:"sess-42"`
	Subject           string   `json:"subject" validate:"required,max=100" example:"Algebra"`
	Duration          int      `json:"duration" validate:"gte=0" example:"20"`
	QuestionsAnswered int      `json:"questions_answered" validate:"gte=0" example:"10"`
	CorrectAnswers    int      `json:"correct_answers" validate:"gte=0,ltefield=QuestionsAnswered" example:"9"`
	SkillsImproved    []string `json:"skills_improved" validate:"dive,max=100"`
	StreakDays        int64    `json:"streak_days" validate:"gte=0" example:"6"`
	InviteCode        string   `json:"invite_code" validate:"max=100"`
	InviterID         int64    `json:"inviter_id" validate:"gte=0"`
}

func (r CompleteSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteSessionResponse struct {
	Accuracy      int                       `json:"accuracy"`
	Balance       *model.RewardBalance      `json:"balance"`
	Notifications []model.Notification      `json:"notifications"`
	Decision      model.LoopTriggerDecision `json:"decision"`
}
