package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse is one failed field from a struct validation pass.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

func init() {
	// uuid.UUID zero-values silently, so "required" never catches a
	// missing ID. This tag does.
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// ISO 4217 alpha codes, uppercase. Pair with omitempty where the
	// column has a default.
	validate.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return currencyCodePattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct runs the registered rules against data and returns one
// entry per failed field, or nil when everything passes.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	if err := validate.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errors = append(errors, &ErrorResponse{
				FailedField: fieldErr.StructNamespace(),
				Tag:         fieldErr.Tag(),
				Value:       fieldErr.Param(),
			})
		}
	}
	return errors
}
