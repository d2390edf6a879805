package servo

import "fmt"

// Pulse-width model for a standard hobby servo on a 50 Hz line.
const (
	MinPulseUS = 500
	MaxPulseUS = 2500
	PeriodUS   = 20000
	FreqHz     = 50
)

// DefaultResolution is the full-scale duty count of a 14-bit timer.
const DefaultResolution uint32 = 1 << 14

// DutyDomain selects the output representation of the mapper.
type DutyDomain int

const (
	// DomainRaw emits duty counts scaled to the peripheral resolution.
	DomainRaw DutyDomain = iota
	// DomainPercent emits an integer percentage 0-100. The 0-180 degree
	// range collapses onto pulse widths of 2-12 percent of the period,
	// roughly 18 degrees per step, so only use it when the peripheral
	// cannot take a raw duty count.
	DomainPercent
)

// ParseDutyDomain maps a configuration string onto a DutyDomain.
func ParseDutyDomain(s string) (DutyDomain, error) {
	switch s {
	case "", "raw":
		return DomainRaw, nil
	case "percent":
		return DomainPercent, nil
	}
	return 0, fmt.Errorf("unknown duty domain %q", s)
}

// String implements fmt.Stringer.
func (d DutyDomain) String() string {
	if d == DomainPercent {
		return "percent"
	}
	return "raw"
}

// PulseUS returns the pulse width in microseconds for an angle.
func PulseUS(a Angle) uint32 {
	return MinPulseUS + (MaxPulseUS-MinPulseUS)*uint32(a)/uint32(AngleMax)
}

// Mapper converts angles to duty values for one PWM peripheral.
// The zero value maps onto raw duty counts at DefaultResolution.
type Mapper struct {
	Domain     DutyDomain
	Resolution uint32
}

// FullScale returns the duty count representing a 100% duty cycle
// in the configured domain.
func (m Mapper) FullScale() uint32 {
	if m.Domain == DomainPercent {
		return 100
	}
	if m.Resolution == 0 {
		return DefaultResolution
	}
	return m.Resolution
}

// Duty maps an angle onto the configured output domain.
func (m Mapper) Duty(a Angle) uint32 {
	return PulseUS(a) * m.FullScale() / PeriodUS
}
