// Package shiftreg bit-bangs frames into the SIPO shift-register chain that
// feeds the dot drivers.
package shiftreg

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-tactilus/internal/frame"
)

// ErrLengthMismatch reports a frame that does not match the configured bit
// count. No line is touched when this is returned.
var ErrLengthMismatch = errors.New("shiftreg: frame length mismatch")

// Pins groups the five control lines of the chain. The Link is the sole
// writer of these lines.
type Pins struct {
	SerialIn     gpio.PinIO // data into the first stage
	ShiftClock   gpio.PinIO // rising edge shifts the chain by one bit
	Clear        gpio.PinIO // active low, zeroes every stage
	LatchClock   gpio.PinIO // rising edge commits stages to the outputs
	OutputEnable gpio.PinIO // active low
}

// Link drives the shift-register chain. Init must run once before the
// first PushFrame.
type Link struct {
	pins   Pins
	bits   int
	settle time.Duration
	sleep  func(time.Duration)
	log    zerolog.Logger
}

// New returns a link for a chain of the given bit length. The settle delay
// is the wait after every line transition and must be nonzero; the chain's
// setup/hold times are a correctness assumption the software cannot check.
func New(pins Pins, bits int, settle time.Duration, log zerolog.Logger) (*Link, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("shiftreg: invalid chain length %d", bits)
	}
	if settle <= 0 {
		return nil, errors.New("shiftreg: settle delay must be nonzero")
	}
	for _, p := range []gpio.PinIO{pins.SerialIn, pins.ShiftClock, pins.Clear, pins.LatchClock, pins.OutputEnable} {
		if p == nil {
			return nil, errors.New("shiftreg: all five control lines are required")
		}
	}
	return &Link{
		pins:   pins,
		bits:   bits,
		settle: settle,
		sleep:  time.Sleep,
		log:    log,
	}, nil
}

// Init pulses CLEAR to zero every shift and storage stage, enables the
// parallel outputs, and idles both clocks low.
func (l *Link) Init() error {
	if err := l.pins.Clear.Out(gpio.Low); err != nil {
		return fmt.Errorf("shiftreg: clear low: %w", err)
	}
	l.sleep(l.settle)
	if err := l.pins.Clear.Out(gpio.High); err != nil {
		return fmt.Errorf("shiftreg: clear high: %w", err)
	}
	l.sleep(l.settle)
	if err := l.pins.OutputEnable.Out(gpio.Low); err != nil {
		return fmt.Errorf("shiftreg: output enable: %w", err)
	}
	if err := l.pins.ShiftClock.Out(gpio.Low); err != nil {
		return fmt.Errorf("shiftreg: shift clock idle: %w", err)
	}
	if err := l.pins.LatchClock.Out(gpio.Low); err != nil {
		return fmt.Errorf("shiftreg: latch clock idle: %w", err)
	}
	l.sleep(l.settle)
	l.log.Debug().Int("bits", l.bits).Dur("settle", l.settle).Msg("shift chain cleared")
	return nil
}

// PushFrame shifts f into the chain and latches it to the outputs in one
// commit. Bits go out highest index first: each clock edge moves the whole
// chain one stage, so after all bits are in, index 0 sits in the stage
// nearest the serial input and array order matches physical output order.
// The outputs never show a partial frame; they only change on the final
// latch pulse.
func (l *Link) PushFrame(f frame.Frame) error {
	if len(f) != l.bits {
		return fmt.Errorf("%w: got %d bits, chain is %d", ErrLengthMismatch, len(f), l.bits)
	}
	for i := len(f) - 1; i >= 0; i-- {
		if err := l.pins.SerialIn.Out(gpio.Level(f[i])); err != nil {
			return fmt.Errorf("shiftreg: serial in at bit %d: %w", i, err)
		}
		l.sleep(l.settle)
		if err := l.pins.ShiftClock.Out(gpio.High); err != nil {
			return fmt.Errorf("shiftreg: shift clock rise at bit %d: %w", i, err)
		}
		l.sleep(l.settle)
		if err := l.pins.ShiftClock.Out(gpio.Low); err != nil {
			return fmt.Errorf("shiftreg: shift clock fall at bit %d: %w", i, err)
		}
		l.sleep(l.settle)
	}
	if err := l.pins.LatchClock.Out(gpio.High); err != nil {
		return fmt.Errorf("shiftreg: latch rise: %w", err)
	}
	l.sleep(l.settle)
	if err := l.pins.LatchClock.Out(gpio.Low); err != nil {
		return fmt.Errorf("shiftreg: latch fall: %w", err)
	}
	l.sleep(l.settle)
	return nil
}

// Bits returns the configured chain length.
func (l *Link) Bits() int { return l.bits }
