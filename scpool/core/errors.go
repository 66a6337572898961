package core

import (
	"errors"
)

var (
	ErrPoolInit          = errors.New("pool:init")
	ErrPoolClosed        = errors.New("pool:closed")
	ErrPoolTimeout       = errors.New("pool:timeout")
	ErrPoolBusy          = errors.New("pool:busy")
	ErrPoolInvalidTarget = errors.New("pool:invalid target")
	ErrNilResource       = errors.New("pool:nil resource")
	ErrForeignResource   = errors.New("pool:foreign resource")
	ErrDoubleRelease     = errors.New("pool:double release")
)
