package weather

import (
	"time"

	"go.uber.org/zap"
)

type rollingConfig struct {
	size int
}

// An Option configures a RollingAverage.
type Option func(c *rollingConfig) Option

// Size sets how many of the most recent samples are averaged. It must be
// between 1 and 255. By default, the size is 3.
func Size(n int) Option {
	return func(c *rollingConfig) Option {
		old := c.size
		c.size = n
		return Size(old)
	}
}

// A StationOption configures a station.
type StationOption func(s *Station) StationOption

// OnBus can be used to specify I²C bus name
// ("/dev/i2c-2", "I2C2", "2"). By default, the bus name is "", which selects
// the first available bus.
func OnBus(name string) StationOption {
	return func(s *Station) StationOption {
		old := s.bus
		s.bus = name
		return OnBus(old)
	}
}

// OnAddr can be used to specify alternative I²C address.
// By default, the address is 0x48.
func OnAddr(addr uint16) StationOption {
	return func(s *Station) StationOption {
		old := s.addr
		s.addr = addr
		return OnAddr(old)
	}
}

// Every sets the polling interval used by Run. By default, the station polls
// every 10 seconds.
func Every(interval time.Duration) StationOption {
	return func(s *Station) StationOption {
		old := s.interval
		s.interval = interval
		return Every(old)
	}
}

// WithSensor uses an already opened sensor instead of a TMP102 on the bus.
func WithSensor(sensor Sensor) StationOption {
	return func(s *Station) StationOption {
		old := s.sensor
		s.sensor = sensor
		return WithSensor(old)
	}
}

// WithDataset replaces the default 3 sample rolling average.
func WithDataset(r *RollingAverage) StationOption {
	return func(s *Station) StationOption {
		old := s.data
		s.data = r
		return WithDataset(old)
	}
}

// WithLogger sets the logger used to report sensor errors.
func WithLogger(l *zap.Logger) StationOption {
	return func(s *Station) StationOption {
		old := s.log
		s.log = l
		return WithLogger(old)
	}
}
