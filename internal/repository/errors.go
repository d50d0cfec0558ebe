package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrAttachmentNotFound is returned when an attachment is not found
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrStatusConflict is returned when a status transition loses a race:
	// the task no longer carries the status the transition started from
	ErrStatusConflict = errors.New("task status changed concurrently")
)
