package weather

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSize is the number of samples kept by a RollingAverage when no Size
// option is given.
const DefaultSize = 3

// maxCount is the largest value the sample counter holds before it snaps back
// to the capacity.
const maxCount = math.MaxUint8

// ErrInvalidSize is returned when a RollingAverage is created with a capacity
// outside [1, 255].
var ErrInvalidSize = errors.New("invalid dataset size")

// RollingAverage keeps the last few samples in a fixed circular buffer and
// maintains an integer average of them.
//
// While the buffer is filling, the average divides the sum of count+1 slots by
// count (the counter value before the sample is stored). The first samples are
// therefore inflated: with a size of 3, adding 10 and then 20 reports 30. Once
// the buffer is full the divisor is the capacity. This matches the output of
// the deployed sensors and is kept as is.
//
// A RollingAverage is not safe for concurrent use.
type RollingAverage struct {
	data    []uint16
	count   uint8
	average uint32
}

// NewRollingAverage returns a cleared RollingAverage. The buffer is allocated
// once here and never grows.
func NewRollingAverage(opts ...Option) (*RollingAverage, error) {
	cfg := rollingConfig{size: DefaultSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	size := cfg.size
	if size < 1 || size > maxCount {
		return nil, fmt.Errorf("weather: size %d: %w", size, ErrInvalidSize)
	}

	return &RollingAverage{
		data: make([]uint16, size),
	}, nil
}

// Clear drops every sample and resets the average to 0.
func (r *RollingAverage) Clear() {
	r.count = 0
	r.average = 0
	for i := range r.data {
		r.data[i] = 0
	}
}

// Average returns the average computed by the last call to Add.
func (r *RollingAverage) Average() uint32 {
	return r.average
}

// Add stores a sample, overwriting the oldest one when the buffer is full,
// and updates the average.
func (r *RollingAverage) Add(value uint16) {
	size := len(r.data)
	count := int(r.count)

	r.data[count%size] = value

	var sum uint32
	for i := 0; i < size; i++ {
		sum += uint32(r.data[i])
		if i >= count {
			break
		}
	}

	switch {
	case count == 0:
		r.average = sum
	case count < size:
		r.average = sum / uint32(count)
	default:
		r.average = sum / uint32(size)
	}

	if r.count == maxCount {
		r.count = uint8(size)
	} else {
		r.count++
	}
}

// Cap returns the number of samples the buffer holds.
func (r *RollingAverage) Cap() int {
	return len(r.data)
}

// Saturated reports whether the buffer has been filled since the last Clear.
// From then on the average is taken over all slots.
func (r *RollingAverage) Saturated() bool {
	return int(r.count) >= len(r.data)
}
