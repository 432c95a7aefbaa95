package model

import "errors"

var (
	ErrEmptyInput         = errors.New("empty message")
	ErrNotConfigured      = errors.New("generation client not configured")
	ErrValidationRejected = errors.New("generated response rejected by quality gate")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrInvalidFeedback    = errors.New("invalid feedback")
	ErrInvalidSettings    = errors.New("invalid api settings")
	ErrInvalidSection     = errors.New("invalid knowledge section")
)
