// Package sim provides in-memory stand-ins for the device hardware so
// the daemon can run on a workstation.
package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/framework"
	"github.com/linkbots/servolink/pkg/wifi"
)

// ErrAssociation is returned by scripted connect failures.
var ErrAssociation = errors.New("sim: association refused")

// Radio simulates the wireless driver. The zero value associates on
// the first attempt; FailConnects scripts initial failures and Drop
// simulates losing the access point at runtime.
type Radio struct {
	StartDelay   time.Duration
	ConnectDelay time.Duration
	FailConnects int

	lock     sync.Mutex
	started  bool
	linkUp   bool
	connects int
	dropCh   chan struct{}
}

// NewRadio creates a Radio.
func NewRadio() *Radio {
	return &Radio{}
}

// Started implements wifi.Driver.
func (r *Radio) Started() (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.started, nil
}

// Start implements wifi.Driver.
func (r *Radio) Start(ctx context.Context) error {
	if err := framework.Sleep(ctx, r.StartDelay); err != nil {
		return err
	}
	r.lock.Lock()
	r.started = true
	r.lock.Unlock()
	return nil
}

// Connect implements wifi.Driver.
func (r *Radio) Connect(ctx context.Context, creds wifi.Credentials) error {
	if err := framework.Sleep(ctx, r.ConnectDelay); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	i := r.connects
	r.connects++
	if i < r.FailConnects {
		return ErrAssociation
	}
	glog.V(1).Infof("sim: associated with %q", creds.SSID)
	r.linkUp = true
	r.dropCh = make(chan struct{})
	return nil
}

// WaitDisconnect implements wifi.Driver.
func (r *Radio) WaitDisconnect(ctx context.Context) error {
	r.lock.Lock()
	ch := r.dropCh
	r.lock.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// LinkUp implements wifi.Driver.
func (r *Radio) LinkUp() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.linkUp
}

// Drop simulates the access point going away.
func (r *Radio) Drop() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.linkUp {
		return
	}
	r.linkUp = false
	close(r.dropCh)
}
