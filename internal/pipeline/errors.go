package pipeline

import "errors"

var (
	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrFileTooLarge is returned when decoded file content exceeds the upload limit.
	ErrFileTooLarge = errors.New("file too large")
)
