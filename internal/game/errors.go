package game

import "errors"

var (
	ErrInvalidTransition = errors.New("action not allowed in the current session state")
	ErrStepMismatch      = errors.New("submitted step is not the current step")
	ErrInvalidForm       = errors.New("invalid step form")
)
