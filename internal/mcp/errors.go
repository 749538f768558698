package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/dayplan/internal/domain/backup"
	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/timeslot"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Conflict and copy
// rejections are not mapped here; tools report those as ordinary
// results so a client can branch on them.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, catalog.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "activity not found", RecoveryHint: "Call list_activities for valid ids"}
	case errors.Is(err, schedule.ErrItemNotFound):
		return &APIError{Code: "ITEM_NOT_FOUND", Message: "schedule item not found", RecoveryHint: "Call get_day for valid item ids"}
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, timeslot.ErrInvalidFormat):
		return &APIError{Code: "INVALID_FORMAT", Message: err.Error(), RecoveryHint: "Times are HH:MM, dates are YYYY-MM-DD"}
	case errors.Is(err, backup.ErrInvalidBackup):
		return &APIError{Code: "INVALID_BACKUP", Message: err.Error()}
	default:
		return nil
	}
}

// toolError wraps a domain error for a tool response, attaching the
// mapped code when there is one.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
