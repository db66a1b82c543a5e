package client

import (
	"fmt"
	"strings"
)

// PuppetID identifies a puppet inside one instance.
type PuppetID string

// Direction is a facing or a movement intent.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four movement directions in binding order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the wire token for d.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// ParseDirection accepts a direction token in any letter case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return DirNone, fmt.Errorf("unknown direction %q", s)
	}
}

// UnmarshalText lets directions appear as YAML map keys.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText renders the wire token.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Puppet is the local mirror of one server-side character. X and Y are
// placed (render) coordinates, origin top-left.
type Puppet struct {
	ID       PuppetID  `json:"id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	IsMoving bool      `json:"is_moving"`
	Facing   Direction `json:"facing"`
}
