package planner

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/api"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// decodeJSONBody decodes and validates a request body. Unknown fields are
// rejected so typos in override names fail loudly instead of silently
// leaving the plan untouched.
func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if stderrors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func writeSuccess(w http.ResponseWriter, logger *zerolog.Logger, data any) {
	writeJSON(w, logger, http.StatusOK, api.SuccessEnvelope{Data: data})
}

// writeError maps a typed error onto its HTTP status and envelope. Internal
// errors never leak their message; everything else shows the typed message
// when one was set.
func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() != pkgerrors.CodeInternal && typed.Message() != "" {
		msg = typed.Message()
	}

	payload := api.ErrorEnvelope{
		Error: api.Error{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}
	if meta.DetailsAllowed {
		payload.Error.Details = typed.Details()
	}

	logger.Error().
		Err(err).
		Str("error_code", string(typed.Code())).
		Int("status", meta.HTTPStatus).
		Msg("request failed")

	writeJSON(w, logger, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}
