package wifi

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/framework"
)

// DefaultPollInterval is the fixed period at which the sequencer polls
// for link-up and address acquisition during boot.
const DefaultPollInterval = 500 * time.Millisecond

// Sequencer gates boot on the link: it blocks until the link is
// associated and an address is acquired, then reports the address.
// It runs once; after it returns, the machine keeps the link alive on
// its own and the sequencer has no further role.
type Sequencer struct {
	Machine      *Machine
	Stack        Stack
	PollInterval time.Duration
}

// NewSequencer creates a Sequencer with the default poll interval.
func NewSequencer(m *Machine, stack Stack) *Sequencer {
	return &Sequencer{Machine: m, Stack: stack, PollInterval: DefaultPollInterval}
}

// Wait blocks until the link is up and addressed. There is no timeout;
// an unreachable access point stalls boot here until ctx is canceled.
func (s *Sequencer) Wait(ctx context.Context) (string, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	glog.Info("wifi: waiting for link")
	for !s.Machine.Driver.LinkUp() {
		if err := framework.Sleep(ctx, interval); err != nil {
			return "", err
		}
	}
	s.Machine.setState(AwaitingAddress)
	glog.Info("wifi: waiting for address")
	addr, ok := s.Stack.Addr()
	for !ok {
		if err := framework.Sleep(ctx, interval); err != nil {
			return "", err
		}
		addr, ok = s.Stack.Addr()
	}
	s.Machine.setState(Ready)
	glog.Infof("wifi: ready at %s", addr)
	return addr, nil
}
