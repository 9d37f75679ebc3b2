package hme

import (
	"net"
	"testing"

	"golang.org/x/net/nettest"
)

// TestPipeConformsToNetConn runs golang.org/x/net/nettest's conformance
// suite against net.Pipe, the net.Conn implementation session_test.go
// uses to stand up an in-memory connection for every Session test in
// this package. If net.Pipe ever stopped behaving like a well-behaved
// net.Conn (close, concurrent Read/Write, deadline semantics), every test built
// on it would be exercising a lie; this test is the check that it
// doesn't.
func TestPipeConformsToNetConn(t *testing.T) {
	nettest.TestConn(t, func() (c1, c2 net.Conn, stop func(), err error) {
		c1, c2 = net.Pipe()
		return c1, c2, func() { c1.Close(); c2.Close() }, nil
	})
}
