package dto

import "github.com/lac-hong-legacy/ven_growth/model"

type OrchestrateRequest struct {
	Event       string            `json:"event" validate:"required,max=100" example:"session_completed"`
	UserContext model.UserContext `json:"user_context"`
	Session     *model.Session    `json:"session"`
}

func (r OrchestrateRequest) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return err
	}
	return GetValidator().Var(r.UserContext.UserID, "gt=0")
}

type AnalyzeSessionRequest struct {
	Session model.Session `json:"session"`
}

func (r AnalyzeSessionRequest) Validate() error {
	if err := GetValidator().Var(r.Session.Subject, "required,max=100"); err != nil {
		return err
	}
	if err := GetValidator().Var(r.Session.QuestionsAnswered, "gte=0"); err != nil {
		return err
	}
	return GetValidator().Var(r.Session.CorrectAnswers, "gte=0")
}

type AnalyzeSessionResponse struct {
	Insights model.SessionInsights `json:"insights"`
	Fallback bool                  `json:"fallback"`
}

type PersonalizeMessageRequest struct {
	Context model.PersonalizationContext `json:"context"`
}

func (r PersonalizeMessageRequest) Validate() error {
	if err := GetValidator().Var(string(r.Context.LoopType), "required,loop_type"); err != nil {
		return err
	}
	return GetValidator().Var(r.Context.Sender.Name, "required,max=100")
}

type PersonalizeMessageResponse struct {
	Message  string `json:"message"`
	Fallback bool   `json:"fallback"`
}
