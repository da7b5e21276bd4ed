package tmp102

import (
	"errors"
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
)

var (
	// ErrNotDevice throws an error when the configuration register does not
	// look like a TMP102 (the read-only resolution bits are not set).
	ErrNotDevice error = errors.New("tmp102: configuration does not match")
	// ErrTimeout is returned when a one-shot conversion does not finish.
	ErrTimeout error = errors.New("tmp102: conversion timed out")
)

// maxPolls bounds how many times a register is read while waiting for a flag.
const maxPolls = 1000

// Device defines a TMP102 device.
type Device struct {
	dev *i2c.Dev
	bus i2c.BusCloser
}

// New returns a new TMP102 device. By default, this sets a conversion rate of
// 4 Hz in normal 12-bit mode.
//
// Argument "busName" can be used to specify the exact bus to use ("/dev/i2c-2", "I2C2", "2").
// Argument "addr" can be used to specify alternative address if default (0x48) is unavailable and changed.
// If "busName" argument is specified as an empty string "" the first available bus will be used.
func New(busName string, addr uint16) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("tmp102: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("tmp102: could not open I2C bus: %w", err)
	}

	d, err := NewI2C(bus, addr)
	if err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus

	return d, nil
}

// NewI2C returns a new TMP102 device on an already opened bus. The bus is not
// closed by Close.
func NewI2C(bus i2c.Bus, addr uint16) (*Device, error) {
	if addr == 0 {
		addr = Addr
	}

	d := &Device{
		dev: &i2c.Dev{
			Addr: addr,
			Bus:  bus,
		},
	}

	cfg, err := d.Read(RegConfig)
	if err != nil {
		return nil, fmt.Errorf("tmp102: could not get configuration: %w", err)
	}
	if cfg&resolution != resolution {
		return nil, ErrNotDevice
	}

	if _, err = d.Options(
		ConversionRate(CR4),
		ExtendedMode(false),
		FaultQueue(FQ1),
	); err != nil {
		return nil, fmt.Errorf("tmp102: could not initialize device: %w", err)
	}
	if err := d.Startup(); err != nil {
		return nil, fmt.Errorf("tmp102: could not initialize device: %w", err)
	}

	return d, nil
}

// Close puts the device into shutdown mode and closes the bus if it was
// opened by New.
func (d *Device) Close() {
	d.Shutdown()
	if d.bus != nil {
		d.bus.Close()
	}
}

// Read reads a 16-bit register.
func (d *Device) Read(reg byte) (uint16, error) {
	b := make([]byte, 2)
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return 0, fmt.Errorf("tmp102: could not read register %#x: %w", reg, err)
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Write writes a 16-bit register.
func (d *Device) Write(reg byte, data uint16) error {
	if err := d.dev.Tx([]byte{reg, byte(data >> 8), byte(data)}, nil); err != nil {
		return fmt.Errorf("tmp102: could not write register %#x: %w", reg, err)
	}

	return nil
}

func (d *Device) waitUntil(reg byte, flag uint16, bit byte) error {
	if bit > 1 {
		return fmt.Errorf("invalid bit %v, it should be 1 or 0", bit)
	}
	for i := 0; i < maxPolls; i++ {
		state, err := d.Read(reg)
		if err != nil {
			return fmt.Errorf("could not wait for %#x in %#x to be %v: %w", flag, reg, bit, err)
		}
		if (state&flag != 0) == (bit == 1) {
			return nil
		}
	}

	return ErrTimeout
}

// Temperature returns the last converted temperature of the device.
func (d *Device) Temperature() (physic.Temperature, error) {
	raw, err := d.Read(RegTemp)
	if err != nil {
		return 0, fmt.Errorf("tmp102: could not read temperature: %w", err)
	}

	return decode(raw), nil
}

// decode converts the temperature register to a temperature. Each LSB is
// 0.0625°C.
func decode(raw uint16) physic.Temperature {
	shift := shiftNormal
	if raw&extendedFlag != 0 {
		shift = shiftExtended
	}
	steps := int16(raw) >> shift

	return physic.ZeroCelsius + physic.Temperature(steps)*(physic.Kelvin/16)
}

// OneShot starts a single conversion and waits for it to finish. The device
// must be shut down for the conversion to be triggered.
func (d *Device) OneShot() (physic.Temperature, error) {
	if _, err := d.config(RegConfig, ^OneShotBit, OneShotBit); err != nil {
		return 0, fmt.Errorf("tmp102: could not start conversion: %w", err)
	}
	if err := d.waitUntil(RegConfig, OneShotBit, 1); err != nil {
		return 0, fmt.Errorf("tmp102: could not finish conversion: %w", err)
	}

	return d.Temperature()
}

// Shutdown sets the device into power-save mode.
func (d *Device) Shutdown() error {
	_, err := d.config(RegConfig, ^ShutdownBit, ShutdownBit)

	return err
}

// Startup wakes the device from power-save mode.
func (d *Device) Startup() error {
	_, err := d.config(RegConfig, ^ShutdownBit, 0)

	return err
}

func (d *Device) String() string {
	return fmt.Sprintf("TMP102{%s}", d.dev)
}
