package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeInvalidHorizon      Code = "INVALID_HORIZON"
	CodeInvalidOverride     Code = "INVALID_OVERRIDE"
	CodeInvalidPeriod       Code = "INVALID_PERIOD"
	CodeUnknownKPI          Code = "UNKNOWN_KPI"
	CodeInsufficientData    Code = "INSUFFICIENT_DATA"
	CodeUnsatisfiableTarget Code = "UNSATISFIABLE_TARGET"
	CodeInternal            Code = "INTERNAL_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeInvalidHorizon: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "forecast horizon must be a positive number of months",
		DetailsAllowed: false,
	},
	CodeInvalidOverride: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "scenario overrides must be non-negative unit counts",
		DetailsAllowed: true,
	},
	CodeInvalidPeriod: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "period is outside the forecast horizon",
		DetailsAllowed: false,
	},
	CodeUnknownKPI: {
		HTTPStatus:     http.StatusNotFound,
		PublicMessage:  "unknown KPI",
		DetailsAllowed: true,
	},
	CodeInsufficientData: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "not enough history to fit a model",
		DetailsAllowed: true,
	},
	CodeUnsatisfiableTarget: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "target profit cannot be reached by adjusting unit sales",
		DetailsAllowed: true,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		PublicMessage:  "internal server error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As walks an error chain and returns the first typed Error, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf resolves the code of any error; untyped errors map to CodeInternal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
