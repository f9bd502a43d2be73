package scenario

import "errors"

var (
	// ErrContentNotFound is returned when no source knows the requested level.
	ErrContentNotFound = errors.New("content not found")

	// ErrEmptyContent is returned when a level's scenario pool is empty.
	ErrEmptyContent = errors.New("content has no scenarios")
)
