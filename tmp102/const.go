package tmp102

// Register addresses
const (
	RegTemp   = 0x00
	RegConfig = 0x01
	RegTLow   = 0x02
	RegTHigh  = 0x03
)

// Device constants
const (
	Addr = 0x48

	// resolution bits are read-only and always set.
	resolution uint16 = 0b0110_0000_0000_0000
)

// Configuration flags
const (
	OneShotBit   uint16 = (1 << 15)
	Polarity     uint16 = (1 << 10)
	Thermostat   uint16 = (1 << 9)
	ShutdownBit  uint16 = (1 << 8)
	Alert        uint16 = (1 << 5)
	ExtendedBit  uint16 = (1 << 4)
	extendedFlag uint16 = (1 << 0) // set in RegTemp while in extended mode
)

// Conversion Rate Control
const (
	CR025 uint16 = (iota << 6) // 0.25 Hz
	CR1                        // 1 Hz
	CR4                        // 4 Hz (power-on default)
	CR8                        // 8 Hz

	crMask uint16 = 0b1111_1111_0011_1111
)

// Fault Queue
const (
	FQ1 uint16 = (iota << 11)
	FQ2
	FQ4
	FQ6

	fqMask uint16 = 0b1110_0111_1111_1111
)

// Temperature resolution in normal (12-bit) and extended (13-bit) mode.
const (
	shiftNormal   = 4
	shiftExtended = 3
)
