package wifi

import "context"

// Credentials identify the access point to join.
type Credentials struct {
	SSID       string
	Passphrase string
}

// Driver abstracts the wireless hardware. Implementations are expected
// to be used by a single Machine and need not be safe for concurrent
// calls.
type Driver interface {
	// Started reports whether the radio is already powered up.
	Started() (bool, error)
	// Start powers up the radio. Errors are fatal to the machine.
	Start(ctx context.Context) error
	// Connect attempts one association with the given credentials.
	// A non-nil error counts as a failed attempt, not a fatal fault.
	Connect(ctx context.Context, creds Credentials) error
	// WaitDisconnect blocks until the association is lost or ctx is
	// canceled.
	WaitDisconnect(ctx context.Context) error
	// LinkUp reports whether the link is currently associated.
	LinkUp() bool
}

// Stack reports the network address assigned to the link, when one is.
type Stack interface {
	Addr() (string, bool)
}
