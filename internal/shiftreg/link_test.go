package shiftreg

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/coreman2200/funtimes-tactilus/internal/frame"
)

// recordPin appends every level write to a shared op log so tests can
// assert the exact line choreography.
type recordPin struct {
	gpiotest.Pin
	ops *[]string
}

func (p *recordPin) Out(l gpio.Level) error {
	v := "0"
	if l == gpio.High {
		v = "1"
	}
	*p.ops = append(*p.ops, p.N+"="+v)
	return p.Pin.Out(l)
}

func newRecordedLink(t *testing.T, bits int) (*Link, *[]string) {
	t.Helper()
	ops := &[]string{}
	pin := func(name string) gpio.PinIO {
		return &recordPin{Pin: gpiotest.Pin{N: name}, ops: ops}
	}
	l, err := New(Pins{
		SerialIn:     pin("SER_IN"),
		ShiftClock:   pin("SRCK"),
		Clear:        pin("N_SRCLR"),
		LatchClock:   pin("RCLK"),
		OutputEnable: pin("N_OE"),
	}, bits, time.Microsecond, zerolog.Nop())
	require.NoError(t, err)
	l.sleep = func(time.Duration) {}
	return l, ops
}

func TestNewRejectsBadSetup(t *testing.T) {
	pins := Pins{
		SerialIn:     &gpiotest.Pin{N: "SER_IN"},
		ShiftClock:   &gpiotest.Pin{N: "SRCK"},
		Clear:        &gpiotest.Pin{N: "N_SRCLR"},
		LatchClock:   &gpiotest.Pin{N: "RCLK"},
		OutputEnable: &gpiotest.Pin{N: "N_OE"},
	}
	_, err := New(pins, 0, time.Microsecond, zerolog.Nop())
	assert.Error(t, err, "zero-length chain")

	_, err = New(pins, 48, 0, zerolog.Nop())
	assert.Error(t, err, "zero settle delay")

	pins.Clear = nil
	_, err = New(pins, 48, time.Microsecond, zerolog.Nop())
	assert.Error(t, err, "missing clear line")
}

func TestInitClearsThenEnables(t *testing.T) {
	l, ops := newRecordedLink(t, 48)
	require.NoError(t, l.Init())
	assert.Equal(t, []string{
		"N_SRCLR=0",
		"N_SRCLR=1",
		"N_OE=0",
		"SRCK=0",
		"RCLK=0",
	}, *ops)
}

func TestPushFrameShiftsHighestIndexFirst(t *testing.T) {
	l, ops := newRecordedLink(t, 4)
	require.NoError(t, l.Init())
	*ops = nil

	require.NoError(t, l.PushFrame(frame.Frame{true, false, true, true}))
	assert.Equal(t, []string{
		"SER_IN=1", "SRCK=1", "SRCK=0", // bit 3
		"SER_IN=1", "SRCK=1", "SRCK=0", // bit 2
		"SER_IN=0", "SRCK=1", "SRCK=0", // bit 1
		"SER_IN=1", "SRCK=1", "SRCK=0", // bit 0
		"RCLK=1", "RCLK=0",
	}, *ops)
}

func TestPushFrameRejectsShortFrameWithoutClocking(t *testing.T) {
	l, ops := newRecordedLink(t, 48)
	require.NoError(t, l.Init())
	*ops = nil

	err := l.PushFrame(frame.New(4)[:47]) // one bit short of 48
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Empty(t, *ops, "no line may move on a rejected frame")
}

func TestPushFrameLatchesExactlyOnce(t *testing.T) {
	l, ops := newRecordedLink(t, 48)
	require.NoError(t, l.Init())
	*ops = nil

	require.NoError(t, l.PushFrame(frameAlternating(48)))

	var shifts, latches int
	for _, op := range *ops {
		switch op {
		case "SRCK=1":
			shifts++
		case "RCLK=1":
			latches++
		}
	}
	assert.Equal(t, 48, shifts)
	assert.Equal(t, 1, latches)
	assert.Equal(t, "RCLK=0", (*ops)[len(*ops)-1], "latch returns low after commit")
}

func frameAlternating(bits int) frame.Frame {
	f := make(frame.Frame, bits)
	for i := range f {
		f[i] = i%2 == 0
	}
	return f
}
