package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Prefix is prepended to every environment variable.
const Prefix = "WEATHER_"

type Config struct {
	// I²C bus name ("/dev/i2c-2", "I2C2", "2"). Empty selects the first
	// available bus.
	Bus string `env:"BUS"`

	// I²C address of the sensor, decimal or 0x prefixed.
	Addr Address `env:"ADDR" envDefault:"0x48"`

	// Number of samples in the rolling average (1 to 255).
	Window int `env:"WINDOW" envDefault:"3"`

	// How frequently the sensor is polled.
	Interval time.Duration `env:"INTERVAL" envDefault:"10s"`

	// Address to serve Prometheus metrics on. Empty disables the server.
	MetricsListen string `env:"METRICS_LISTEN"`

	// Minimum level logged.
	LogLevel zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`

	// Human readable logs instead of JSON.
	LogDevelopment bool `env:"LOG_DEVELOPMENT"`
}

// Address is an I²C address.
type Address uint16

func (a *Address) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 0, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", text, err)
	}
	*a = Address(v)
	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("%#x", uint16(a))
}

func Parse() (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{
		Prefix: Prefix,
	})
}

func Must() Config {
	cfg, err := Parse()
	if err != nil {
		panic("could not get config: " + err.Error())
	}
	return cfg
}
