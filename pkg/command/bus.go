package command

import (
	"context"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/servo"
)

// Actuator is the consumer side of the bus. The bus is its exclusive
// owner while running; no other component writes to it.
type Actuator interface {
	SetAngle(servo.Angle) error
}

// Bus drains pending commands from any number of slots into one
// actuator. There is no priority between slots and no debouncing:
// whichever slot signals first is applied first, and every accepted
// command causes exactly one actuator write.
type Bus struct {
	Actuator Actuator

	slots []*Slot
}

// NewBus creates a Bus draining the given slots.
func NewBus(actuator Actuator, slots ...*Slot) *Bus {
	return &Bus{Actuator: actuator, slots: slots}
}

// Name implements framework.Named.
func (b *Bus) Name() string {
	return "command-bus"
}

// Run implements Runnable. It waits for any slot to signal and applies
// the latest angle from it until the context is canceled.
func (b *Bus) Run(ctx context.Context) error {
	wakeCh := make(chan *Slot)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for _, slot := range b.slots {
		go forward(subCtx, slot, wakeCh)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case slot := <-wakeCh:
			a, ok := slot.Take()
			if !ok {
				continue
			}
			if err := b.Actuator.SetAngle(a); err != nil {
				glog.Errorf("actuator write failed: %v", err)
				continue
			}
			glog.Infof("servo moved to %d degrees", a)
		}
	}
}

// forward relays one slot's ready signals to the shared wake channel.
// It holds each signal until the consumer accepts it, so concurrent
// signals on different slots are each serviced.
func forward(ctx context.Context, slot *Slot, wakeCh chan<- *Slot) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-slot.Ready():
			select {
			case <-ctx.Done():
				return
			case wakeCh <- slot:
			}
		}
	}
}
