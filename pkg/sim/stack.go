package sim

import "time"

// Stack simulates address acquisition: the address becomes visible
// AcquireDelay after creation.
type Stack struct {
	Address      string
	AcquireDelay time.Duration

	birth time.Time
}

// NewStack creates a Stack with a fixed address.
func NewStack(address string, delay time.Duration) *Stack {
	return &Stack{Address: address, AcquireDelay: delay, birth: time.Now()}
}

// Addr implements wifi.Stack.
func (s *Stack) Addr() (string, bool) {
	if s.Address == "" || time.Since(s.birth) < s.AcquireDelay {
		return "", false
	}
	return s.Address, true
}
