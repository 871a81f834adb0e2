package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "H"
	case OrientationVertical:
		return "V"
	default:
		return ""
	}
}

// Perpendicular returns the other axis. OrientationNone stays none.
func (o Orientation) Perpendicular() Orientation {
	switch o {
	case OrientationHorizontal:
		return OrientationVertical
	case OrientationVertical:
		return OrientationHorizontal
	default:
		return OrientationNone
	}
}

func ParseOrientation(value string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "H", "HORIZONTAL":
		return OrientationHorizontal, nil
	case "V", "VERTICAL":
		return OrientationVertical, nil
	default:
		return OrientationNone, cerr.ErrOrientationValue(value)
	}
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

var orientations = [2]Orientation{OrientationHorizontal, OrientationVertical}

type ShipSpec struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// Span returns the length cells a ship would occupy from origin along
// orientation. Horizontal grows the column, vertical grows the row.
func Span(origin Coordinates, orientation Orientation, length int) []Coordinates {
	span := make([]Coordinates, 0, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationHorizontal {
			span = append(span, Coordinates{Row: origin.Row, Col: origin.Col + i})
		} else {
			span = append(span, Coordinates{Row: origin.Row + i, Col: origin.Col})
		}
	}
	return span
}

// step moves c by n cells along orientation.
func step(c Coordinates, orientation Orientation, n int) Coordinates {
	if orientation == OrientationHorizontal {
		return Coordinates{Row: c.Row, Col: c.Col + n}
	}
	return Coordinates{Row: c.Row + n, Col: c.Col}
}
