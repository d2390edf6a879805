// Package command carries accepted angle commands from the ingestion
// channels to the single actuator owner.
package command

import (
	"sync"

	"github.com/linkbots/servolink/pkg/servo"
)

// Slot hands the most recent angle from one producer to one consumer.
// A newer value overwrites an unread older one, so the consumer only
// ever observes the latest intent and no backlog can build up.
type Slot struct {
	lock    sync.Mutex
	value   servo.Angle
	pending bool
	readyCh chan struct{}
}

// NewSlot creates an empty Slot.
func NewSlot() *Slot {
	return &Slot{readyCh: make(chan struct{}, 1)}
}

// Put stores an angle, replacing any unread one, and signals Ready.
func (s *Slot) Put(a servo.Angle) {
	s.lock.Lock()
	s.value, s.pending = a, true
	s.lock.Unlock()
	select {
	case s.readyCh <- struct{}{}:
	default:
	}
}

// Ready signals when a value is waiting to be taken.
func (s *Slot) Ready() <-chan struct{} {
	return s.readyCh
}

// Take removes and returns the pending angle, if any.
func (s *Slot) Take() (servo.Angle, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	a, ok := s.value, s.pending
	s.pending = false
	return a, ok
}
