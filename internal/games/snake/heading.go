package snake

import "fmt"

// Heading is the snake's movement direction.
type Heading int

const (
	HeadingNone Heading = iota
	HeadingUp
	HeadingDown
	HeadingLeft
	HeadingRight
)

// Delta returns the unit step (dx, dy) for the heading. Y grows downwards.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case HeadingUp:
		return 0, -1
	case HeadingDown:
		return 0, 1
	case HeadingLeft:
		return -1, 0
	case HeadingRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading. HeadingNone has no opposite.
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingUp:
		return HeadingDown
	case HeadingDown:
		return HeadingUp
	case HeadingLeft:
		return HeadingRight
	case HeadingRight:
		return HeadingLeft
	default:
		return HeadingNone
	}
}

func (h Heading) String() string {
	switch h {
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText encodes the heading by name.
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a heading name written by MarshalText.
func (h *Heading) UnmarshalText(text []byte) error {
	for _, cand := range []Heading{HeadingNone, HeadingUp, HeadingDown, HeadingLeft, HeadingRight} {
		if cand.String() == string(text) {
			*h = cand
			return nil
		}
	}
	return fmt.Errorf("snake: unknown heading %q", text)
}
