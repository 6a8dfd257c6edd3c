package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

const (
	wildcardHost = "0.0.0.0"

	maxHostnameLen = 253
	maxLabelLen    = 63
)

// ListenAddress is a validated (host, port) pair.
//
// The host keeps the text it was resolved from so that String round-trips
// hostnames such as "localhost"; the resolved IP is available via AddrPort.
type ListenAddress struct {
	host string
	addr netip.AddrPort
}

// Resolve parses address as host:port and resolves the host to an IP.
//
// An empty host means all IPv4 interfaces. IP literals are used as-is;
// hostnames go through the system resolver and the first IPv4 result is
// preferred over IPv6.
func Resolve(address string) (ListenAddress, error) {
	return ResolveContext(context.Background(), address)
}

// ResolveContext is [Resolve] with a context bounding the hostname lookup.
func ResolveContext(ctx context.Context, address string) (ListenAddress, error) {
	trimmed := strings.TrimSpace(address)
	host, portText, err := net.SplitHostPort(trimmed)
	if err != nil {
		return ListenAddress{}, fmt.Errorf("%w %q: %w", ErrInvalidAddress, address, err)
	}

	// brackets are only valid around an IPv6 literal
	if strings.HasPrefix(trimmed, "[") {
		if ip, err := netip.ParseAddr(host); err != nil || !ip.Is6() {
			return ListenAddress{}, fmt.Errorf("%w %q: bracketed host must be an IPv6 address", ErrInvalidAddress, address)
		}
	}

	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return ListenAddress{}, fmt.Errorf("%w %q: port must be a number in [0, 65535]", ErrInvalidAddress, address)
	}

	if host == "" {
		host = wildcardHost
	}

	ip, err := resolveHost(ctx, host)
	if err != nil {
		return ListenAddress{}, err
	}

	return ListenAddress{
		host: canonicalHost(host, ip),
		addr: netip.AddrPortFrom(ip, uint16(port)),
	}, nil
}

func resolveHost(ctx context.Context, host string) (netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return ip.Unmap(), nil
	}

	if err := validateHostname(host); err != nil {
		return netip.Addr{}, fmt.Errorf("%w: host %q: %w", ErrInvalidAddress, host, err)
	}

	ips, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: resolve %q: %w", ErrUnsupportedFamily, host, err)
	}

	var fallback netip.Addr
	for _, ip := range ips {
		ip = ip.Unmap()
		if ip.Is4() {
			return ip, nil
		}
		if !fallback.IsValid() && ip.Is6() {
			fallback = ip
		}
	}
	if fallback.IsValid() {
		return fallback, nil
	}

	return netip.Addr{}, fmt.Errorf("%w: %q has no IPv4 or IPv6 address", ErrUnsupportedFamily, host)
}

// validateHostname checks RFC 1123 syntax: dot-separated labels of 1 to 63
// letters, digits or hyphens, no label starting or ending with a hyphen and
// at most one trailing dot. A name made only of numeric labels is a broken
// IP literal, not a hostname.
func validateHostname(host string) error {
	name := strings.TrimSuffix(host, ".")
	if name == "" || len(name) > maxHostnameLen {
		return errors.New("hostname must be 1 to 253 characters")
	}

	numeric := true
	for _, label := range strings.Split(name, ".") {
		if label == "" || len(label) > maxLabelLen {
			return errors.New("hostname labels must be 1 to 63 characters")
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return errors.New("hostname labels must not start or end with '-'")
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= '0' && c <= '9':
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-':
				numeric = false
			default:
				return fmt.Errorf("hostname has invalid character %q", c)
			}
		}
	}
	if numeric {
		return errors.New("not a valid IP address")
	}

	return nil
}

// canonicalHost keeps hostnames verbatim and normalizes IP literals.
func canonicalHost(host string, ip netip.Addr) string {
	if _, err := netip.ParseAddr(host); err == nil {
		return ip.String()
	}
	return host
}

// Host returns the host part as given (or normalized, for IP literals).
func (a ListenAddress) Host() string {
	return a.host
}

// Port returns the port number. Zero asks the OS for an ephemeral port.
func (a ListenAddress) Port() uint16 {
	return a.addr.Port()
}

// AddrPort returns the resolved socket address.
func (a ListenAddress) AddrPort() netip.AddrPort {
	return a.addr
}

// IsZero reports whether a is the zero value, i.e. never resolved.
func (a ListenAddress) IsZero() bool {
	return !a.addr.IsValid()
}

// String returns host:port, bracketing IPv6 hosts.
func (a ListenAddress) String() string {
	if a.IsZero() {
		return ""
	}
	return net.JoinHostPort(a.host, strconv.Itoa(int(a.addr.Port())))
}

// withPort returns a copy of a bound to port, used once the OS has picked an
// ephemeral port.
func (a ListenAddress) withPort(port uint16) ListenAddress {
	a.addr = netip.AddrPortFrom(a.addr.Addr(), port)
	return a
}
