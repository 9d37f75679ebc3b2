package hme

import (
	"time"

	"github.com/tivo-community/hme-go/internal/wire"
)

// deadliner is implemented by net.Conn; checked via type assertion
// since Session only requires io.ReadWriteCloser.
type deadliner interface {
	SetDeadline(time.Time) error
}

// handshake performs spec.md §4.3's 8-byte SBTV exchange. A magic
// mismatch or I/O failure leaves the session in Dead without ever
// calling the application.
func (s *Session) handshake() error {
	if s.handshakeTimeout > 0 {
		if d, ok := s.conn.(deadliner); ok {
			_ = d.SetDeadline(time.Now().Add(s.handshakeTimeout))
			defer d.SetDeadline(time.Time{})
		}
	}

	if err := wire.WriteHandshake(s.conn, s.protoMajor, s.protoMinor); err != nil {
		return &TransportClosedError{Err: err}
	}

	major, minor, err := wire.ReadHandshake(s.br)
	if err != nil {
		return err
	}
	s.peerMajor, s.peerMinor = major, minor
	s.log.Infof("hme: handshake complete, peer protocol version %d.%d", major, minor)
	exchange := []byte{s.protoMajor, s.protoMinor, major, minor}
	s.log.Debugf("hme: handshake fingerprint=%s", fingerprint(exchange))
	s.logSocketBuffers()
	return nil
}
