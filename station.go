package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cgxeiji/weather/tmp102"
	"go.uber.org/zap"
	"periph.io/x/periph/conn/physic"
)

// ErrOutOfRange is returned when a temperature cannot be stored as a sample
// (below 0 K or above 655.35 K).
var ErrOutOfRange = errors.New("temperature out of range")

// centikelvin is the unit of a sample.
const centikelvin = 10 * physic.MilliKelvin

// Sensor is a source of temperatures.
type Sensor interface {
	Temperature() (physic.Temperature, error)
	Close()
}

// Reading is the result of a single poll.
type Reading struct {
	// Sample is the temperature that was added, in centikelvin.
	Sample uint16
	// Average is the rolling average after the sample was added, in
	// centikelvin.
	Average   uint32
	Saturated bool
	At        time.Time
	// Err is set when the sensor could not be read. No sample was added.
	Err error
}

// Station polls a temperature sensor and keeps a rolling average of the
// readings.
type Station struct {
	sensor   Sensor
	data     *RollingAverage
	log      *zap.Logger
	interval time.Duration

	bus  string
	addr uint16
}

// NewStation returns a new station. Unless WithSensor is given, it opens a
// TMP102 on the configured bus.
func NewStation(opts ...StationOption) (*Station, error) {
	s := &Station{
		log:      zap.NewNop(),
		interval: 10 * time.Second,
		addr:     tmp102.Addr,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.interval <= 0 {
		return nil, fmt.Errorf("weather: invalid polling interval %v", s.interval)
	}

	if s.data == nil {
		data, err := NewRollingAverage()
		if err != nil {
			return nil, err
		}
		s.data = data
	}

	if s.sensor == nil {
		sensor, err := tmp102.New(s.bus, s.addr)
		if err != nil {
			return nil, fmt.Errorf("weather: could not open sensor: %w", err)
		}
		s.sensor = sensor
	}

	return s, nil
}

// Close closes the sensor.
func (s *Station) Close() {
	s.sensor.Close()
}

// Sample reads the current temperature in centikelvin.
func (s *Station) Sample() (uint16, error) {
	t, err := s.sensor.Temperature()
	if err != nil {
		return 0, fmt.Errorf("weather: could not read temperature: %w", err)
	}

	return toSample(t)
}

func toSample(t physic.Temperature) (uint16, error) {
	if t < 0 {
		return 0, fmt.Errorf("weather: %v: %w", t, ErrOutOfRange)
	}
	ck := t / centikelvin
	if ck > math.MaxUint16 {
		return 0, fmt.Errorf("weather: %v: %w", t, ErrOutOfRange)
	}

	return uint16(ck), nil
}

// Poll reads one sample and adds it to the rolling average.
func (s *Station) Poll() Reading {
	r := Reading{At: time.Now()}

	sample, err := s.Sample()
	if err != nil {
		r.Err = err
		r.Average = s.data.Average()
		r.Saturated = s.data.Saturated()
		return r
	}
	s.data.Add(sample)

	r.Sample = sample
	r.Average = s.data.Average()
	r.Saturated = s.data.Saturated()
	return r
}

// Average returns the current rolling average in centikelvin.
func (s *Station) Average() uint32 {
	return s.data.Average()
}

// Clear drops every sample collected so far.
func (s *Station) Clear() {
	s.data.Clear()
}

// Run polls the sensor right away and then at every interval until ctx is
// done. Each reading is passed to report from the calling goroutine. Sensor
// errors are logged and reported, but do not stop the loop.
func (s *Station) Run(ctx context.Context, report func(Reading)) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		r := s.Poll()
		if r.Err != nil {
			s.log.Warn("could not poll sensor", zap.Error(r.Err))
		} else {
			s.log.Debug("sample",
				zap.Uint16("sample", r.Sample),
				zap.Uint32("average", r.Average),
				zap.Bool("saturated", r.Saturated),
			)
		}
		if report != nil {
			report(r)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Celsius formats a temperature in centikelvin as degrees Celsius with two
// decimals.
func Celsius(ck uint32) string {
	c := int64(ck) - 27315
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}

	return fmt.Sprintf("%s%d.%02dC", sign, c/100, c%100)
}
