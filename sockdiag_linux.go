//go:build linux
// +build linux

package hme

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// socketBuffers reads SO_RCVBUF/SO_SNDBUF off the session's connection,
// for a debug-level log line at handshake time. Best-effort: any
// failure to introspect the fd (not a *net.TCPConn, closed already,
// etc.) yields zeros rather than an error, since this is diagnostic
// only and must never fail a session.
func socketBuffers(conn interface{ SyscallConn() (syscall.RawConn, error) }) (rcvBuf, sndBuf int) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, 0
	}
	_ = raw.Control(func(fd uintptr) {
		if v, err := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF); err == nil {
			rcvBuf = v
		}
		if v, err := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF); err == nil {
			sndBuf = v
		}
	})
	return rcvBuf, sndBuf
}

// logSocketBuffers emits a debug log line with the connection's socket
// buffer sizes, if the connection is a TCP socket exposing SyscallConn.
func (s *Session) logSocketBuffers() {
	type syscallConner interface {
		SyscallConn() (syscall.RawConn, error)
	}
	sc, ok := s.conn.(syscallConner)
	if !ok {
		return
	}
	rcv, snd := socketBuffers(sc)
	if rcv == 0 && snd == 0 {
		return
	}
	s.log.Debugf("hme: socket buffers rcvbuf=%d sndbuf=%d", rcv, snd)
}
