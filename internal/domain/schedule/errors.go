package schedule

import "errors"

var (
	// ErrItemNotFound indicates no schedule contains the item id.
	ErrItemNotFound = errors.New("schedule item not found")
	// ErrTimeConflict indicates the requested slot overlaps an existing item.
	ErrTimeConflict = errors.New("time slot conflicts with an existing item")
	// ErrNothingToCopy indicates the source day has no items to copy.
	ErrNothingToCopy = errors.New("source day has no items")
	// ErrTargetNotEmpty indicates the copy target already has items.
	ErrTargetNotEmpty = errors.New("target day already has items")
	// ErrInvalidInput indicates invalid input for schedule operations.
	ErrInvalidInput = errors.New("invalid schedule input")
)
