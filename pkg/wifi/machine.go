package wifi

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/framework"
)

// DefaultCooldown is the fixed delay before a failed or lost
// association is retried. There is no backoff and no attempt cap.
const DefaultCooldown = 5 * time.Second

// Machine keeps the link associated, retrying forever with a fixed
// cooldown. Association loss is never fatal; only a radio start
// failure ends Run.
type Machine struct {
	Driver   Driver
	Creds    Credentials
	Cooldown time.Duration

	// OnChange, when set, is called on every state transition. Calls
	// come from the goroutine performing the transition.
	OnChange func(LinkState)

	lock  sync.RWMutex
	state LinkState
}

// NewMachine creates a Machine with the default cooldown.
func NewMachine(drv Driver, creds Credentials) *Machine {
	return &Machine{Driver: drv, Creds: creds, Cooldown: DefaultCooldown}
}

// Name implements framework.Named.
func (m *Machine) Name() string {
	return "wifi"
}

// State returns a point-in-time snapshot of the link state.
func (m *Machine) State() LinkState {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

func (m *Machine) setState(s LinkState) {
	m.lock.Lock()
	m.state = s
	m.lock.Unlock()
	glog.V(1).Infof("wifi: %v", s)
	if m.OnChange != nil {
		m.OnChange(s)
	}
}

// Run implements framework.Runnable. Each cycle powers the radio up if
// needed, attempts one association, and on success parks on the
// driver's disconnect wait. Failures put the machine back in
// Disconnected for one cooldown before the next cycle.
func (m *Machine) Run(ctx context.Context) error {
	cooldown := m.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		started, err := m.Driver.Started()
		if err != nil {
			return err
		}
		if !started {
			m.setState(Starting)
			if err := m.Driver.Start(ctx); err != nil {
				return err
			}
			glog.Info("wifi: radio started")
		}
		m.setState(Connecting)
		if err := m.Driver.Connect(ctx, m.Creds); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			glog.Warningf("wifi: connect to %q failed: %v", m.Creds.SSID, err)
			m.setState(Disconnected)
			if err := framework.Sleep(ctx, cooldown); err != nil {
				return err
			}
			continue
		}
		glog.Infof("wifi: connected to %q", m.Creds.SSID)
		m.setState(Connected)
		if err := m.Driver.WaitDisconnect(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		glog.Warningf("wifi: association with %q lost", m.Creds.SSID)
		m.setState(Disconnected)
		if err := framework.Sleep(ctx, cooldown); err != nil {
			return err
		}
	}
}
