// Package portalloc chooses the TCP port the dashboard listens on.
//
// A port supplied by the user is taken verbatim. Otherwise the OS assigns a
// free one and the socket is kept open until the caller releases it, so the
// detect-then-release window only opens when the caller is ready to bind.
package portalloc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
)

// Reservation is a chosen port, holding its socket when the port was
// assigned by the OS.
type Reservation struct {
	port     string
	listener net.Listener

	once sync.Once
	err  error
}

// Resolve returns a reservation for override when it is set, without
// probing or validating it. Otherwise it binds host:0 and keeps the socket
// open. An empty host binds all interfaces.
func Resolve(ctx context.Context, host, override string) (*Reservation, error) {
	if override != "" {
		return &Reservation{port: override}, nil
	}

	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to find a free port: %w", err)
	}
	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		l.Close()
		return nil, fmt.Errorf("unexpected listener address %T", l.Addr())
	}
	return &Reservation{port: strconv.Itoa(addr.Port), listener: l}, nil
}

// Port is the chosen port.
func (r *Reservation) Port() string { return r.port }

// Assigned reports whether the port was assigned by the OS.
func (r *Reservation) Assigned() bool { return r.listener != nil }

// Release closes the held socket, if any. It is safe to call more than once.
func (r *Reservation) Release() error {
	r.once.Do(func() {
		if r.listener != nil {
			r.err = r.listener.Close()
		}
	})
	return r.err
}
