package servo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// SysfsPWM drives a PWM channel through the Linux sysfs interface
// under /sys/class/pwm.
type SysfsPWM struct {
	Chip    int
	Channel int

	periodNS  uint64
	fullScale uint32
}

// Configure implements PWM. The channel is exported if needed, then
// the period is programmed and the output enabled.
func (p *SysfsPWM) Configure(freqHz, fullScale uint32) error {
	if freqHz == 0 || fullScale == 0 {
		return errors.New("servo: invalid pwm configuration")
	}
	dir := p.channelDir()
	if _, err := os.Stat(dir); err != nil {
		if err = p.export(); err != nil {
			return err
		}
	}
	p.periodNS = 1e9 / uint64(freqHz)
	p.fullScale = fullScale
	if err := writeSysfs(filepath.Join(dir, "period"), strconv.FormatUint(p.periodNS, 10)); err != nil {
		return err
	}
	return writeSysfs(filepath.Join(dir, "enable"), "1")
}

// SetDuty implements PWM. The duty count is converted back to an
// on-time in nanoseconds.
func (p *SysfsPWM) SetDuty(duty uint32) error {
	if p.fullScale == 0 {
		return errors.New("servo: pwm not configured")
	}
	ns := p.periodNS * uint64(duty) / uint64(p.fullScale)
	return writeSysfs(filepath.Join(p.channelDir(), "duty_cycle"), strconv.FormatUint(ns, 10))
}

// Close disables the output.
func (p *SysfsPWM) Close() error {
	return writeSysfs(filepath.Join(p.channelDir(), "enable"), "0")
}

func (p *SysfsPWM) chipDir() string {
	return fmt.Sprintf("/sys/class/pwm/pwmchip%d", p.Chip)
}

func (p *SysfsPWM) channelDir() string {
	return filepath.Join(p.chipDir(), fmt.Sprintf("pwm%d", p.Channel))
}

func (p *SysfsPWM) export() error {
	if err := writeSysfs(filepath.Join(p.chipDir(), "export"), strconv.Itoa(p.Channel)); err != nil {
		return err
	}
	// udev needs a moment to create the channel files
	dir := p.channelDir()
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(dir); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("servo: pwm channel %s not available", dir)
}

func writeSysfs(path, value string) error {
	return os.WriteFile(path, []byte(value), 0644)
}
