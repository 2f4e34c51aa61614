// Package dot defines the drive states of a single bistable dot actuator
// and their 2-bit H-bridge driver encoding.
package dot

import (
	"errors"
	"fmt"
)

// State is the drive state of one dot's H-bridge driver.
type State uint8

const (
	// HighImpedance leaves the coil disconnected; the dot holds its
	// mechanical position.
	HighImpedance State = iota
	// Positive drives the coil forward (raises the dot).
	Positive
	// Negative drives the coil in reverse (lowers the dot).
	Negative
	// Brake shorts the coil, damping any motion.
	Brake
)

// ErrInvalidStateKind reports a state value outside the four known kinds.
var ErrInvalidStateKind = errors.New("dot: invalid state kind")

// Encode maps a state to its (IN_A, IN_B) driver input pair. The driver is
// high-impedance when IN_A = IN_B = 0 and braking when IN_A = IN_B = 1.
func Encode(s State) (a, b bool, err error) {
	switch s {
	case HighImpedance:
		return false, false, nil
	case Positive:
		return true, false, nil
	case Negative:
		return false, true, nil
	case Brake:
		return true, true, nil
	default:
		return false, false, fmt.Errorf("%w: %d", ErrInvalidStateKind, uint8(s))
	}
}

// Decode returns the state whose encoding is (a, b). It is total over all
// four bit pairs and is the exact left-inverse of Encode.
func Decode(a, b bool) State {
	switch {
	case a && b:
		return Brake
	case a:
		return Positive
	case b:
		return Negative
	default:
		return HighImpedance
	}
}

func (s State) String() string {
	switch s {
	case HighImpedance:
		return "high-z"
	case Positive:
		return "pos"
	case Negative:
		return "neg"
	case Brake:
		return "brake"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// ParseState accepts the firmware's textual state tags, as used in config
// files and on the command line.
func ParseState(tag string) (State, error) {
	switch tag {
	case "high-z":
		return HighImpedance, nil
	case "pos":
		return Positive, nil
	case "neg":
		return Negative, nil
	case "brake":
		return Brake, nil
	default:
		return HighImpedance, fmt.Errorf("%w: %q", ErrInvalidStateKind, tag)
	}
}

// Address identifies one dot on the display. Both indices are zero-based;
// earlier firmware numbered dots 1-6, callers must normalize before
// constructing an Address.
type Address struct {
	Cell int
	Dot  int
}

func (a Address) String() string {
	return fmt.Sprintf("cell %d dot %d", a.Cell, a.Dot)
}
