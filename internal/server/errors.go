package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-intake/internal/extraction"
	"github.com/jonathan/resume-intake/internal/parsing"
	"github.com/jonathan/resume-intake/internal/pipeline"
	"github.com/jonathan/resume-intake/internal/scores"
)

// Error codes returned in the error envelope.
const (
	CodeValidation      = "validation_error"
	CodeUnsupported     = "unsupported_format"
	CodeEmptyContent    = "empty_content"
	CodeParseFailure    = "parse_failure"
	CodePayloadTooLarge = "payload_too_large"
	CodeNotFound        = "not_found"
	CodeUnauthorized    = "unauthorized"
	CodeRateLimited     = "rate_limit_exceeded"
	CodeTimeout         = "timeout"
	CodeInternal        = "internal_error"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a requested record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// classify returns the status code and error code for err. Sentinels are
// checked before ParseError because extraction failures arrive wrapped in one.
func classify(err error) (int, string) {
	var validationErr *ErrValidation
	var notFoundErr *ErrNotFound
	var maxBytesErr *http.MaxBytesError
	var parseErr *parsing.ParseError
	var apiErr *parsing.APICallError
	var invariantErr *parsing.ValidationError

	switch {
	case err == nil:
		return http.StatusInternalServerError, CodeInternal
	case errors.As(err, &validationErr),
		errors.Is(err, pipeline.ErrInvalidRequest),
		errors.Is(err, parsing.ErrInvalidEncoding),
		errors.Is(err, scores.ErrInvalidScore):
		return http.StatusBadRequest, CodeValidation
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, pipeline.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, CodePayloadTooLarge
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, CodeUnsupported
	case errors.Is(err, extraction.ErrEmptyContent):
		return http.StatusUnprocessableEntity, CodeEmptyContent
	case errors.As(err, &parseErr), errors.As(err, &apiErr), errors.As(err, &invariantErr):
		return http.StatusBadGateway, CodeParseFailure
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// ErrorCode returns the envelope error code for an error
func ErrorCode(err error) string {
	_, code := classify(err)
	return code
}

// clientMessage returns the message shown to API clients. Client errors
// carry their own message; upstream and internal failures only expose their
// cause outside production.
func clientMessage(err error, status int, production bool) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}

	var summary string
	switch status {
	case http.StatusBadGateway:
		summary = "failed to parse resume"
	case http.StatusGatewayTimeout:
		summary = "request timed out"
	default:
		summary = "internal server error"
	}
	if production {
		return summary
	}
	return summary + ": " + err.Error()
}
