package wifi

import (
	"context"
	"net"

	"github.com/golang/glog"
)

// HostedDriver satisfies Driver on systems where the operating system
// owns the wireless link, or the device is wired. The link is reported
// as permanently up and the machine simply parks in Connected.
type HostedDriver struct{}

func (HostedDriver) Started() (bool, error) {
	return true, nil
}

func (HostedDriver) Start(context.Context) error {
	return nil
}

func (HostedDriver) Connect(context.Context, Credentials) error {
	return nil
}

func (HostedDriver) WaitDisconnect(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (HostedDriver) LinkUp() bool {
	return true
}

// HostedStack reports the host's first non-loopback IPv4 address,
// restricted to a named interface when Interface is set.
type HostedStack struct {
	Interface string
}

// Addr implements Stack.
func (s HostedStack) Addr() (string, bool) {
	addrs, err := s.interfaceAddrs()
	if err != nil {
		glog.Warningf("wifi: list addresses: %v", err)
		return "", false
	}
	return firstIPv4(addrs)
}

func (s HostedStack) interfaceAddrs() ([]net.Addr, error) {
	if s.Interface == "" {
		return net.InterfaceAddrs()
	}
	ifi, err := net.InterfaceByName(s.Interface)
	if err != nil {
		return nil, err
	}
	return ifi.Addrs()
}

func firstIPv4(addrs []net.Addr) (string, bool) {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return ip.String(), true
		}
	}
	return "", false
}
