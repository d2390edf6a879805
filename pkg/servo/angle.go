// Package servo maps commanded angles onto a PWM peripheral driving
// a standard hobby servo.
package servo

import (
	"errors"
	"strconv"
)

// Angle is a commanded servo position in degrees.
type Angle uint8

// AngleMax bounds the accepted command range. Angles are validated at
// the boundary where they enter the system, never clamped silently.
const AngleMax Angle = 180

// Errors reported by ParseAngle. Range errors are distinguished from
// syntax errors so callers can answer them differently.
var (
	ErrAngleSyntax = errors.New("servo: not an angle")
	ErrAngleRange  = errors.New("servo: angle out of range")
)

// Valid reports whether the angle is within the accepted range.
func (a Angle) Valid() bool {
	return a <= AngleMax
}

// ParseAngle parses an unsigned decimal literal into an Angle.
// The literal must fit in 8 bits; a value that fits but exceeds
// AngleMax yields ErrAngleRange.
func ParseAngle(s string) (Angle, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, ErrAngleSyntax
	}
	if a := Angle(v); a.Valid() {
		return a, nil
	}
	return 0, ErrAngleRange
}
