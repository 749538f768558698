package catalog

import "errors"

var (
	// ErrActivityNotFound indicates no visible activity matches the id.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates invalid input for catalog operations.
	ErrInvalidInput = errors.New("invalid activity input")
)
