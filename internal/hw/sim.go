package hw

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Sim returns handles backed by in-memory test pins so the whole stack can
// run without hardware. Buttons start high, matching their pull-ups.
func Sim() *Handles {
	pin := func(name string, lvl gpio.Level) gpio.PinIO {
		return &gpiotest.Pin{N: name, L: lvl}
	}
	return &Handles{
		SerialIn:     pin("SER_IN", gpio.Low),
		ShiftClock:   pin("SRCK", gpio.Low),
		Clear:        pin("N_SRCLR", gpio.High),
		LatchClock:   pin("RCLK", gpio.Low),
		OutputEnable: pin("N_OE", gpio.High),
		Button1:      pin("SW1", gpio.High),
		Button2:      pin("SW2", gpio.High),
		Indicator1:   pin("LED1", gpio.Low),
		Indicator2:   pin("LED2", gpio.Low),
	}
}
