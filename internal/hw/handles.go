// Package hw constructs the GPIO line handles once at startup and hands
// them to the link and sampler, which become the sole writers of their
// lines.
package hw

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/coreman2200/funtimes-tactilus/internal/config"
	"github.com/coreman2200/funtimes-tactilus/internal/input"
	"github.com/coreman2200/funtimes-tactilus/internal/shiftreg"
)

// Handles owns every GPIO line the firmware touches.
type Handles struct {
	SerialIn     gpio.PinIO
	ShiftClock   gpio.PinIO
	Clear        gpio.PinIO
	LatchClock   gpio.PinIO
	OutputEnable gpio.PinIO

	Button1    gpio.PinIO
	Button2    gpio.PinIO
	Indicator1 gpio.PinIO
	Indicator2 gpio.PinIO
}

// FromConfig resolves each configured pin name through the host GPIO
// registry. host.Init must have run first.
func FromConfig(cfg *config.Config) (*Handles, error) {
	h := &Handles{}
	for _, line := range []struct {
		role string
		name string
		dst  *gpio.PinIO
	}{
		{"serial_in", cfg.Pins.SerialIn, &h.SerialIn},
		{"shift_clock", cfg.Pins.ShiftClock, &h.ShiftClock},
		{"clear", cfg.Pins.Clear, &h.Clear},
		{"latch_clock", cfg.Pins.LatchClock, &h.LatchClock},
		{"output_enable", cfg.Pins.OutputEnable, &h.OutputEnable},
		{"button1", cfg.Pins.Button1, &h.Button1},
		{"button2", cfg.Pins.Button2, &h.Button2},
		{"indicator1", cfg.Pins.Indicator1, &h.Indicator1},
		{"indicator2", cfg.Pins.Indicator2, &h.Indicator2},
	} {
		p := gpioreg.ByName(line.name)
		if p == nil {
			return nil, fmt.Errorf("hw: no GPIO pin named %q for %s", line.name, line.role)
		}
		*line.dst = p
	}
	return h, nil
}

// Shift returns the five chain control lines in link form.
func (h *Handles) Shift() shiftreg.Pins {
	return shiftreg.Pins{
		SerialIn:     h.SerialIn,
		ShiftClock:   h.ShiftClock,
		Clear:        h.Clear,
		LatchClock:   h.LatchClock,
		OutputEnable: h.OutputEnable,
	}
}

// Input returns the button and indicator lines in sampler form.
func (h *Handles) Input() input.Pins {
	return input.Pins{
		Button1:    h.Button1,
		Button2:    h.Button2,
		Indicator1: h.Indicator1,
		Indicator2: h.Indicator2,
	}
}
