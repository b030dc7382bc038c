package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// register custom validators
	_ = Validate.RegisterValidation("notblank", notBlankValidation)
}

// notBlankValidation rejects strings that are empty after trimming.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// NewCourse is the payload for creating a course.
type NewCourse struct {
	Name string `json:"name" validate:"notblank"`
}
