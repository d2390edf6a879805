package servo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakePWM struct {
	freqHz    uint32
	fullScale uint32
	duties    []uint32
	failWith  error
}

func (p *fakePWM) Configure(freqHz, fullScale uint32) error {
	p.freqHz, p.fullScale = freqHz, fullScale
	return p.failWith
}

func (p *fakePWM) SetDuty(duty uint32) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.duties = append(p.duties, duty)
	return nil
}

func TestControllerSetup(t *testing.T) {
	pwm := &fakePWM{}
	ctl := NewController(pwm, Mapper{})
	require.NoError(t, ctl.Setup())
	require.Equal(t, uint32(FreqHz), pwm.freqHz)
	require.Equal(t, DefaultResolution, pwm.fullScale)
	// centered at 90 degrees
	require.Equal(t, []uint32{Mapper{}.Duty(90)}, pwm.duties)
}

func TestControllerSetAngle(t *testing.T) {
	pwm := &fakePWM{}
	ctl := NewController(pwm, Mapper{Domain: DomainPercent})
	require.NoError(t, ctl.SetAngle(0))
	require.NoError(t, ctl.SetAngle(180))
	require.Equal(t, []uint32{2, 12}, pwm.duties)
}

func TestControllerRejectsOutOfRange(t *testing.T) {
	pwm := &fakePWM{}
	ctl := NewController(pwm, Mapper{})
	require.Equal(t, ErrAngleRange, ctl.SetAngle(200))
	require.Empty(t, pwm.duties)
}

func TestControllerRepeatWrites(t *testing.T) {
	pwm := &fakePWM{}
	ctl := NewController(pwm, Mapper{})
	require.NoError(t, ctl.SetAngle(45))
	require.NoError(t, ctl.SetAngle(45))
	require.Len(t, pwm.duties, 2)
	require.Equal(t, pwm.duties[0], pwm.duties[1])
}

func TestControllerPropagatesPWMErrors(t *testing.T) {
	errDead := errors.New("pwm dead")
	ctl := NewController(&fakePWM{failWith: errDead}, Mapper{})
	require.Equal(t, errDead, ctl.Setup())
	require.Equal(t, errDead, ctl.SetAngle(10))
}

func TestControllerNopPWM(t *testing.T) {
	ctl := NewController(NopPWM{}, Mapper{})
	require.NoError(t, ctl.Setup())
	require.NoError(t, ctl.SetAngle(180))
	require.Equal(t, ErrAngleRange, ctl.SetAngle(181))
}
