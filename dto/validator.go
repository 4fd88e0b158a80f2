package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/lac-hong-legacy/ven_growth/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("loop_type", validateLoopType)
	validate.RegisterValidation("funnel_event", validateFunnelEvent)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateLoopType(fl validator.FieldLevel) bool {
	return model.LoopType(fl.Field().String()).Valid()
}

func validateFunnelEvent(fl validator.FieldLevel) bool {
	return model.FunnelEventName(fl.Field().String()).Valid()
}

type ValidationError struct {
	Field   string `json:"field" example:"user_id"`
	Message string `json:"message" example:"user_id is required"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min", "gte":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max", "lte":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "gt":
				message = fieldError.Field() + " must be greater than " + fieldError.Param()
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "loop_type":
				message = fieldError.Field() + " must be one of: buddy_challenge voice_room_invite tutor_spotlight proud_parent_share"
			case "funnel_event":
				message = fieldError.Field() + " must be one of: link_created link_clicked signup session_completed conversion"
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	} else if err != nil {
		errors = append(errors, ValidationError{Field: "body", Message: err.Error()})
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
