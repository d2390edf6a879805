package sim

import (
	"sync"

	"github.com/golang/glog"
)

// PWM simulates the servo output channel, recording every programmed
// duty value.
type PWM struct {
	lock      sync.Mutex
	freqHz    uint32
	fullScale uint32
	duties    []uint32
}

// NewPWM creates a PWM.
func NewPWM() *PWM {
	return &PWM{}
}

// Configure implements servo.PWM.
func (p *PWM) Configure(freqHz, fullScale uint32) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.freqHz = freqHz
	p.fullScale = fullScale
	return nil
}

// SetDuty implements servo.PWM.
func (p *PWM) SetDuty(duty uint32) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.duties = append(p.duties, duty)
	glog.V(1).Infof("sim: pwm duty %d/%d", duty, p.fullScale)
	return nil
}

// Duties returns all programmed duty values in order.
func (p *PWM) Duties() []uint32 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]uint32(nil), p.duties...)
}

// LastDuty returns the most recently programmed duty value.
func (p *PWM) LastDuty() (uint32, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if len(p.duties) == 0 {
		return 0, false
	}
	return p.duties[len(p.duties)-1], true
}
