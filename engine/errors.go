package engine

import "errors"

var (
	ErrUnknownSchedule      = errors.New("unknown schedule")
	ErrMalformedSchedule    = errors.New("malformed schedule file")
	ErrInvalidOrientation   = errors.New("invalid bar orientation")
	ErrInvalidDirection     = errors.New("invalid traversal direction")
	ErrInvalidParams        = errors.New("invalid experiment parameters")
	ErrInvalidMotionPattern = errors.New("motion pattern must have exactly one odd segment")
	ErrAborted              = errors.New("experiment aborted")
)
