package servo

import "github.com/golang/glog"

// NopPWM discards duty writes. It backs deployments without a physical
// servo, where the device still brings up the link and answers
// commands.
type NopPWM struct{}

// Configure implements PWM.
func (NopPWM) Configure(freqHz, fullScale uint32) error {
	glog.V(2).Infof("pwm disabled, %d Hz full scale %d ignored", freqHz, fullScale)
	return nil
}

// SetDuty implements PWM.
func (NopPWM) SetDuty(duty uint32) error {
	glog.V(2).Infof("pwm disabled, duty %d ignored", duty)
	return nil
}
