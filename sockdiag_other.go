//go:build !linux
// +build !linux

package hme

// logSocketBuffers is a no-op on non-Linux builds: socket buffer
// introspection depends on golang.org/x/sys/unix's SOL_SOCKET
// constants, which this package does not attempt to port.
func (s *Session) logSocketBuffers() {}
