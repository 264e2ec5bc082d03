package planner

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSameDate        = errors.New("source and target dates are the same")
	ErrNoDayOpen       = errors.New("no day is open")
)
