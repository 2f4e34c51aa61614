package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	. "github.com/coreman2200/funtimes-tactilus/internal/input"
)

type rig struct {
	sw1, sw2, led1, led2 *gpiotest.Pin
	sampler              *Sampler
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		sw1:  &gpiotest.Pin{N: "SW1", L: gpio.High},
		sw2:  &gpiotest.Pin{N: "SW2", L: gpio.High},
		led1: &gpiotest.Pin{N: "LED1"},
		led2: &gpiotest.Pin{N: "LED2"},
	}
	s, err := New(Pins{Button1: r.sw1, Button2: r.sw2, Indicator1: r.led1, Indicator2: r.led2})
	require.NoError(t, err)
	r.sampler = s
	return r
}

func TestSampleUnpressedReadsNone(t *testing.T) {
	r := newRig(t)
	assert.Equal(t, None, r.sampler.Sample())
}

func TestSampleActiveLow(t *testing.T) {
	r := newRig(t)

	r.sw1.L = gpio.Low
	assert.Equal(t, Sw1Pressed, r.sampler.Sample())

	r.sw1.L = gpio.High
	r.sw2.L = gpio.Low
	assert.Equal(t, Sw2Pressed, r.sampler.Sample())
}

// Both buttons down in one cycle always resolves to button 1.
func TestSampleSimultaneousPressPrefersButton1(t *testing.T) {
	r := newRig(t)
	r.sw1.L = gpio.Low
	r.sw2.L = gpio.Low
	assert.Equal(t, Sw1Pressed, r.sampler.Sample())
}

func TestIndicators(t *testing.T) {
	r := newRig(t)
	assert.Equal(t, gpio.Low, r.led1.L, "indicators start off")
	assert.Equal(t, gpio.Low, r.led2.L)

	require.NoError(t, r.sampler.SetIndicator(Sw1Pressed))
	assert.Equal(t, gpio.High, r.led1.L)
	assert.Equal(t, gpio.Low, r.led2.L)

	require.NoError(t, r.sampler.SetIndicator(Sw2Pressed))
	assert.Equal(t, gpio.High, r.led2.L)

	require.NoError(t, r.sampler.ClearIndicators())
	assert.Equal(t, gpio.Low, r.led1.L)
	assert.Equal(t, gpio.Low, r.led2.L)
}

func TestSetIndicatorNoneIsNoop(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.sampler.SetIndicator(None))
	assert.Equal(t, gpio.Low, r.led1.L)
	assert.Equal(t, gpio.Low, r.led2.L)
}
