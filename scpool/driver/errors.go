package driver

import (
	"errors"
)

var (
	ErrTooLarge      = errors.New("data:too large")
	ErrConnClosed    = errors.New("conn:closed")
	ErrInvalidTarget = errors.New("conn:invalid target")
	ErrShortResponse = errors.New("conn:short response")
)
