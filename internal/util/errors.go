package util

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionForbidden   = errors.New("token does not belong to this session")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrUnknownSessionType = errors.New("unknown session store type")
)
