package middleware

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/dto"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is a validation failure with per-field details.
type FieldError struct {
	*sharederrors.AppError
	Details []dto.ErrorDetail
}

// DecodeJSON decodes the request body into dst and validates it. Failures
// come back as request rejections.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return sharederrors.NewAppError(sharederrors.ErrCodeInvalidInput, "Invalid JSON body.", err)
	}

	if err := validate.Struct(dst); err != nil {
		fieldErr := &FieldError{
			AppError: sharederrors.NewAppError(sharederrors.ErrCodeValidationError, "Validation failed", err),
		}
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrs {
				fieldErr.Details = append(fieldErr.Details, dto.ErrorDetail{
					Field:   e.Field(),
					Tag:     e.Tag(),
					Message: e.Field() + " failed the '" + e.Tag() + "' check",
				})
			}
		}
		return fieldErr
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
