package server

import (
	"net"
	"sync"
)

// acceptObserver calls onAccept after the first successful Accept.
type acceptObserver struct {
	net.Listener

	once     sync.Once
	onAccept func()
}

func (l *acceptObserver) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err == nil {
		l.once.Do(l.onAccept)
	}
	return conn, err
}
