// Package serrors turns validation failures into response-ready shapes.
package serrors

import "github.com/go-playground/validator/v10"

// FieldErrors flattens a validator result into a field to message map for
// API responses. A nil err yields an empty map.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = "invalid payload"
		return out
	}
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a YYYY-MM-DD date"
	default:
		return "is invalid"
	}
}
