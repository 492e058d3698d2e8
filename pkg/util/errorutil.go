package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Error codes carried in the response envelope.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrNotFound is wrapped by store sentinels so any layer can map them to 404.
var ErrNotFound = errors.New("not found")

// DomainError is an error that knows how it should be rendered over HTTP.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) *DomainError {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found", http.StatusNotFound, details)
}

// NewInternalError hides err from clients; it is kept for logging only.
func NewInternalError(err error) *DomainError {
	de := NewDomainError(CodeInternal, "internal server error", http.StatusInternalServerError, nil)
	de.Err = err
	return de
}

// ToDomainError classifies err for rendering. Unknown errors become INTERNAL_ERROR.
func ToDomainError(err error) *DomainError {
	var (
		domainErr *DomainError
		fiberErr  *fiber.Error
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return domainErr
	case errors.As(err, &fiberErr):
		return fromFiberError(fiberErr)
	case errors.Is(err, ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return NewNotFound("resource", nil)
	default:
		return NewInternalError(err)
	}
}

// fromFiberError keeps client statuses raised by the router, e.g. 404 for
// unknown routes or 405, and derives the code from the status text.
func fromFiberError(err *fiber.Error) *DomainError {
	if err.Code >= http.StatusInternalServerError {
		return NewInternalError(err)
	}
	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(err.Code), " ", "_"))
	if code == "" {
		code = "REQUEST_FAILED"
	}
	return NewDomainError(code, err.Message, err.Code, nil)
}
