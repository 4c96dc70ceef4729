package things

import (
	"errors"
	"fmt"
)

// ErrBadMaximum is returned for a meter whose maximum is not positive.
var ErrBadMaximum = errors.New("meter maximum must be positive")

// Meter is a bounded quantity such as health. Current stays within
// [0, Maximum].
type Meter struct {
	Current int
	Maximum int
}

// NewMeter returns a full meter.
func NewMeter(maximum int) (Meter, error) {
	if maximum < 1 {
		return Meter{}, fmt.Errorf("new meter %d: %w", maximum, ErrBadMaximum)
	}
	return Meter{Current: maximum, Maximum: maximum}, nil
}

// Modify adds delta to the current value, clamping between zero and the
// maximum, and returns the updated meter.
func (m Meter) Modify(delta int) Meter {
	m.Current += delta
	if m.Current < 0 {
		m.Current = 0
	} else if m.Current > m.Maximum {
		m.Current = m.Maximum
	}
	return m
}

// Empty reports whether the meter has run out.
func (m Meter) Empty() bool {
	return m.Current == 0
}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Current, m.Maximum)
}
