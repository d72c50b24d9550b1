package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultPageSize is applied when the client sends no limit.
	DefaultPageSize = 100
	// MaxPageSize caps the limit a single list request may ask for.
	MaxPageSize = 500
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendDuplicateError sends a conflict response for a duplicate phone number
func SendDuplicateError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("DUPLICATE_PHONE", message, nil))
}

// NormalizePhone strips every non-digit character from a phone number. The
// result is the deduplication and lookup key for leads, so "(555) 123-4567"
// and "555.123.4567" collapse to the same record.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDate parses a calendar date in YYYY-MM-DD form. The second return is
// false for empty or malformed input; list filters treat that as "filter not
// applied" rather than an error.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EndOfDay extends a date bound to 23:59:59 so the whole calendar day falls
// inside an inclusive range.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// ClampPagination normalizes skip and limit to the supported window. Skip is
// floored at 0; limit defaults to DefaultPageSize and is capped at
// MaxPageSize.
func ClampPagination(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit
}

// ParseBoolParam interprets an optional boolean query parameter. Unset or
// unparseable values return nil so the filter is simply not applied.
func ParseBoolParam(s string) *bool {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
