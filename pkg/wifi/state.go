// Package wifi keeps the device associated with its access point and
// gates boot on the link being usable.
package wifi

// LinkState is the association state of the wireless link. It is owned
// by the Machine; everything else reads point-in-time snapshots.
type LinkState int

const (
	// Disconnected is the boot state and the state entered after any
	// association loss, before the retry cooldown elapses.
	Disconnected LinkState = iota
	// Starting means the radio is being powered up.
	Starting
	// Connecting means an association attempt is in flight.
	Connecting
	// Connected means the link is associated.
	Connected
	// AwaitingAddress means the link is up and boot is waiting for an
	// address. Entered once, by the bring-up sequencer.
	AwaitingAddress
	// Ready means the address is acquired and services are allowed to
	// start. Entered once, by the bring-up sequencer.
	Ready
)

var stateNames = map[LinkState]string{
	Disconnected:    "disconnected",
	Starting:        "starting",
	Connecting:      "connecting",
	Connected:       "connected",
	AwaitingAddress: "awaiting-address",
	Ready:           "ready",
}

// String implements fmt.Stringer.
func (s LinkState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
