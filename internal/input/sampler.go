// Package input polls the two trigger buttons and drives their indicator
// lamps.
package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// ButtonEvent classifies one polling cycle's button reading. It is
// recomputed every cycle and never persisted.
type ButtonEvent int

const (
	None ButtonEvent = iota
	Sw1Pressed
	Sw2Pressed
)

func (e ButtonEvent) String() string {
	switch e {
	case Sw1Pressed:
		return "sw1"
	case Sw2Pressed:
		return "sw2"
	default:
		return "none"
	}
}

// Pins groups the two buttons and the two indicator lamps. Buttons are
// active low and pulled high when unpressed; indicators are active high.
// The Sampler is the sole writer of the indicator lines.
type Pins struct {
	Button1    gpio.PinIO
	Button2    gpio.PinIO
	Indicator1 gpio.PinIO
	Indicator2 gpio.PinIO
}

// Sampler reads the buttons once per control cycle.
type Sampler struct {
	pins Pins
}

// New configures both buttons as pulled-up inputs and switches the
// indicators off.
func New(pins Pins) (*Sampler, error) {
	for _, p := range []gpio.PinIO{pins.Button1, pins.Button2} {
		if p == nil {
			return nil, fmt.Errorf("input: both button lines are required")
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("input: configure %s: %w", p.Name(), err)
		}
	}
	if pins.Indicator1 == nil || pins.Indicator2 == nil {
		return nil, fmt.Errorf("input: both indicator lines are required")
	}
	s := &Sampler{pins: pins}
	if err := s.ClearIndicators(); err != nil {
		return nil, err
	}
	return s, nil
}

// Sample reads both buttons once. Button 1 is checked first, so a
// simultaneous press always resolves to Sw1Pressed.
func (s *Sampler) Sample() ButtonEvent {
	if s.pins.Button1.Read() == gpio.Low {
		return Sw1Pressed
	}
	if s.pins.Button2.Read() == gpio.Low {
		return Sw2Pressed
	}
	return None
}

// SetIndicator lights the lamp belonging to ev. Lighting None is a no-op.
func (s *Sampler) SetIndicator(ev ButtonEvent) error {
	switch ev {
	case Sw1Pressed:
		return s.pins.Indicator1.Out(gpio.High)
	case Sw2Pressed:
		return s.pins.Indicator2.Out(gpio.High)
	}
	return nil
}

// ClearIndicators switches both lamps off.
func (s *Sampler) ClearIndicators() error {
	if err := s.pins.Indicator1.Out(gpio.Low); err != nil {
		return fmt.Errorf("input: indicator 1 off: %w", err)
	}
	if err := s.pins.Indicator2.Out(gpio.Low); err != nil {
		return fmt.Errorf("input: indicator 2 off: %w", err)
	}
	return nil
}
