package tmp102

import "fmt"

// Option defines a functional option for the device.
type Option func(d *Device) (Option, error)

// Options set different configuration options and returns the previous value
// of the last option passed.
func (d *Device) Options(options ...Option) (Option, error) {
	var old Option
	var err error
	for _, opt := range options {
		old, err = opt(d)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

// config keeps the bits of reg selected by mask, sets flag and returns the
// previous value of the bits outside mask.
func (d *Device) config(reg byte, mask, flag uint16) (uint16, error) {
	cfg, err := d.Read(reg)
	if err != nil {
		return 0, fmt.Errorf("could not get %#x from %#x: %w", mask, reg, err)
	}
	// the one-shot bit reads back as 1 once a conversion finished; writing it
	// back would start a new one.
	if reg == RegConfig && mask&OneShotBit != 0 {
		cfg &^= OneShotBit
	}
	old := cfg &^ mask
	cfg &= mask
	cfg |= flag
	if err := d.Write(reg, cfg); err != nil {
		return 0, fmt.Errorf("could not set %#x in %#x: %w", flag, reg, err)
	}

	return old, nil
}

// ConversionRate sets how often the device converts a new temperature.
func ConversionRate(cr uint16) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(RegConfig, crMask, cr&^crMask)
		if err != nil {
			return nil, fmt.Errorf("tmp102: could not configure conversion rate: %w", err)
		}

		return ConversionRate(old), nil
	}
}

// ExtendedMode switches between the 12-bit (-55°C to 128°C) and the 13-bit
// (-55°C to 150°C) temperature format.
func ExtendedMode(on bool) Option {
	return func(d *Device) (Option, error) {
		var flag uint16
		if on {
			flag = ExtendedBit
		}
		old, err := d.config(RegConfig, ^ExtendedBit, flag)
		if err != nil {
			return nil, fmt.Errorf("tmp102: could not configure extended mode: %w", err)
		}

		return ExtendedMode(old != 0), nil
	}
}

// FaultQueue sets how many consecutive faults trigger the alert.
func FaultQueue(fq uint16) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(RegConfig, fqMask, fq&^fqMask)
		if err != nil {
			return nil, fmt.Errorf("tmp102: could not configure fault queue: %w", err)
		}

		return FaultQueue(old), nil
	}
}
