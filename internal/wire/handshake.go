package wire

import (
	"bufio"
	"io"
)

// HandshakeMagic is the literal 4-byte prefix both peers exchange.
const HandshakeMagic = "SBTV"

// WriteHandshake writes the 8-byte handshake: "SBTV", two zero bytes, then
// major/minor version bytes (§4.3).
func WriteHandshake(w io.Writer, major, minor uint8) error {
	buf := []byte{'S', 'B', 'T', 'V', 0, 0, major, minor}
	_, err := w.Write(buf)
	return err
}

// ReadHandshake reads the peer's 8-byte handshake and returns its
// major/minor version bytes. If the first four bytes are not "SBTV" it
// returns a ProtocolError with KindBadMagic and the caller must terminate
// the session before dispatching any events (§4.3).
func ReadHandshake(r *bufio.Reader) (major, minor uint8, err error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, err
	}
	if string(buf[0:4]) != HandshakeMagic {
		return 0, 0, newErr(KindBadMagic, "handshake did not begin with SBTV")
	}
	return buf[6], buf[7], nil
}
