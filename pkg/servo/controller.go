package servo

import "github.com/golang/glog"

// PWM programs one hardware PWM channel.
type PWM interface {
	// Configure prepares the channel for the given frequency and
	// full-scale duty count.
	Configure(freqHz, fullScale uint32) error
	// SetDuty programs the on-time as a duty value.
	SetDuty(duty uint32) error
}

// DefaultInitialAngle centers the servo.
const DefaultInitialAngle Angle = 90

// Controller drives a single servo through a PWM channel.
type Controller struct {
	PWM     PWM
	Mapper  Mapper
	Initial Angle
}

// NewController creates a Controller centered at DefaultInitialAngle.
func NewController(pwm PWM, mapper Mapper) *Controller {
	return &Controller{PWM: pwm, Mapper: mapper, Initial: DefaultInitialAngle}
}

// Setup configures the channel for servo output and moves the servo
// to its initial position.
func (c *Controller) Setup() error {
	if err := c.PWM.Configure(FreqHz, c.Mapper.FullScale()); err != nil {
		return err
	}
	if err := c.SetAngle(c.Initial); err != nil {
		return err
	}
	glog.Infof("servo initialized at %d degrees", c.Initial)
	return nil
}

// SetAngle validates the angle, maps it and programs the channel.
// Every accepted angle results in exactly one duty write, including
// repeats of the current position.
func (c *Controller) SetAngle(a Angle) error {
	if !a.Valid() {
		return ErrAngleRange
	}
	duty := c.Mapper.Duty(a)
	if glog.V(2) {
		glog.Infof("servo angle=%d pulse=%dus duty=%d", a, PulseUS(a), duty)
	}
	return c.PWM.SetDuty(duty)
}
