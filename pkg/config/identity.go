package config

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Identity names one device instance: a stable machine-derived device
// ID plus a fresh per-boot session ID.
type Identity struct {
	Device  string
	Session string
}

// NewIdentity derives the device ID from the machine unless overridden.
// Platforms without a machine ID fall back to "unknown".
func NewIdentity(override string) Identity {
	device := override
	if device == "" {
		id, err := machineid.ID()
		if err != nil {
			glog.Warningf("machine id unavailable: %v", err)
			id = "unknown"
		}
		device = id
	}
	return Identity{Device: device, Session: uuid.NewString()}
}
