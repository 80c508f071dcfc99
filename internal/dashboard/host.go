package dashboard

import (
	"fmt"
	"net"
	"os"
)

// LocalHost is used unless remote access is requested.
const LocalHost = "localhost"

// HostResolver finds the address the dashboard should bind. The function
// fields default to the net and os package implementations.
type HostResolver struct {
	Hostname       func() (string, error)
	LookupIP       func(host string) ([]net.IP, error)
	InterfaceAddrs func() ([]net.Addr, error)
}

func (r HostResolver) withDefaults() HostResolver {
	if r.Hostname == nil {
		r.Hostname = os.Hostname
	}
	if r.LookupIP == nil {
		r.LookupIP = net.LookupIP
	}
	if r.InterfaceAddrs == nil {
		r.InterfaceAddrs = net.InterfaceAddrs
	}
	return r
}

// Resolve returns LocalHost for local use. For remote use it returns the
// first non-loopback IPv4 address the machine's hostname resolves to,
// falling back to the first non-loopback interface address.
func (r HostResolver) Resolve(remote bool) (string, error) {
	if !remote {
		return LocalHost, nil
	}
	r = r.withDefaults()

	hostname, err := r.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to read hostname: %w", err)
	}
	if ips, err := r.LookupIP(hostname); err == nil {
		if ip := firstRoutable(ips); ip != nil {
			return ip.String(), nil
		}
	}

	addrs, err := r.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("failed to list interface addresses: %w", err)
	}
	var ips []net.IP
	for _, a := range addrs {
		if ipNet, ok := a.(*net.IPNet); ok {
			ips = append(ips, ipNet.IP)
		}
	}
	if ip := firstRoutable(ips); ip != nil {
		return ip.String(), nil
	}
	return "", fmt.Errorf("no routable address found for host %q", hostname)
}

func firstRoutable(ips []net.IP) net.IP {
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsUnspecified() {
			return ip4
		}
	}
	return nil
}
