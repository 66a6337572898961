package delay

import (
	"time"
)

type Delay interface {
	GetDelay() time.Duration
	Reset()
}

// doubling delay in [min, max], used to pace redial attempts
type redialDelay struct {
	d   time.Duration
	min time.Duration // default 5ms
	max time.Duration // default 1s
}

func NewRedialDelay(min, max time.Duration) Delay {
	if min == 0 {
		min = 5 * time.Millisecond
	}
	if max == 0 {
		max = time.Second
	}
	if min > max {
		min = max
	}
	return &redialDelay{
		min: min,
		max: max,
	}
}

func (d *redialDelay) GetDelay() time.Duration {
	switch d.d {
	case 0:
		d.d = d.min
	case d.max:
	default:
		d.d <<= 1
		if d.d > d.max {
			d.d = d.max
		}
	}
	return d.d
}

func (d *redialDelay) Reset() {
	d.d = 0
}
