package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator/v10 tags over a request DTO and flattens the
// result into field → messages, ready for JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	out := map[string][]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range validationErrs {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required."
		case "email":
			msg = "invalid email format."
		case "min":
			msg = field + " must be at least " + fe.Param() + "."
		case "max":
			msg = field + " must be at most " + fe.Param() + "."
		case "gt":
			msg = field + " must be greater than " + fe.Param() + "."
		case "oneof":
			msg = field + " must be one of: " + fe.Param() + "."
		default:
			msg = field + " has an invalid format."
		}
		out[field] = append(out[field], msg)
	}
	return out
}
