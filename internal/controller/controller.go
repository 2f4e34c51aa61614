// Package controller runs the button-to-actuation state machine and the
// supervising retry loop around it.
package controller

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-tactilus/internal/dot"
	"github.com/coreman2200/funtimes-tactilus/internal/frame"
	"github.com/coreman2200/funtimes-tactilus/internal/input"
	"github.com/coreman2200/funtimes-tactilus/internal/shiftreg"
)

// Timing bundles every blocking interval of the control loop. All waits
// are true blocking delays; the loop has no other duties.
type Timing struct {
	Poll     time.Duration // wait between idle samples
	Hold     time.Duration // how long an actuation frame stays applied
	Cooldown time.Duration // debounce window after an action
}

// DefaultTiming matches the deployed hardware.
var DefaultTiming = Timing{
	Poll:     5 * time.Millisecond,
	Hold:     100 * time.Millisecond,
	Cooldown: 800 * time.Millisecond,
}

// FrameObserver sees every frame just before it is pushed to the chain.
// The sim preview hooks in here.
type FrameObserver func(frame.Frame)

// Controller cycles sample, act, revert, cool down. It is single threaded
// and never samples input while an action is in flight.
type Controller struct {
	link    *shiftreg.Link
	sampler *input.Sampler
	cells   int
	timing  Timing
	observe FrameObserver
	sleep   func(time.Duration)
	log     zerolog.Logger
}

// New returns a controller for the given cell count. Zero fields of timing
// fall back to DefaultTiming.
func New(link *shiftreg.Link, sampler *input.Sampler, cells int, timing Timing, log zerolog.Logger) *Controller {
	if timing.Poll <= 0 {
		timing.Poll = DefaultTiming.Poll
	}
	if timing.Hold <= 0 {
		timing.Hold = DefaultTiming.Hold
	}
	if timing.Cooldown <= 0 {
		timing.Cooldown = DefaultTiming.Cooldown
	}
	return &Controller{
		link:    link,
		sampler: sampler,
		cells:   cells,
		timing:  timing,
		sleep:   time.Sleep,
		log:     log,
	}
}

// Observe registers fn to be called with every frame before it is pushed.
func (c *Controller) Observe(fn FrameObserver) { c.observe = fn }

// RunCycle performs one pass of the control loop: sample the buttons and,
// if one is pressed, run the full actuation sequence to completion. An
// idle cycle costs one poll interval. Errors abort the cycle immediately;
// they indicate an upstream programming fault, never a retryable
// condition.
func (c *Controller) RunCycle() error {
	ev := c.sampler.Sample()
	if ev == input.None {
		c.sleep(c.timing.Poll)
		return nil
	}

	direction := dot.Positive
	if ev == input.Sw2Pressed {
		direction = dot.Negative
	}
	c.log.Info().Stringer("button", ev).Stringer("state", direction).Msg("actuating")

	if err := c.sampler.SetIndicator(ev); err != nil {
		return err
	}
	act, err := frame.Uniform(c.cells, direction)
	if err != nil {
		return err
	}
	if err := c.push(act); err != nil {
		return err
	}
	c.sleep(c.timing.Hold)

	// Every actuation ends with an explicit return to high impedance; a
	// coil must never stay energized past its hold time.
	release, err := frame.Uniform(c.cells, dot.HighImpedance)
	if err != nil {
		return err
	}
	if err := c.push(release); err != nil {
		return err
	}
	if err := c.sampler.ClearIndicators(); err != nil {
		return err
	}
	c.sleep(c.timing.Cooldown)
	return nil
}

func (c *Controller) push(f frame.Frame) error {
	if c.observe != nil {
		c.observe(f)
	}
	return c.link.PushFrame(f)
}
