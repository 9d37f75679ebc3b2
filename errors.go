package hme

import (
	"fmt"

	"github.com/tivo-community/hme-go/internal/wire"
)

// ProtocolError re-exports internal/wire's ProtocolError so callers can
// errors.As against it without importing an internal package.
type ProtocolError = wire.ProtocolError

// TransportClosedError reports that the underlying connection ended
// (cleanly or otherwise) while the session was still in use.
type TransportClosedError struct {
	Err error // nil for a clean close
}

func (e *TransportClosedError) Error() string {
	if e.Err == nil {
		return "hme: transport closed"
	}
	return fmt.Sprintf("hme: transport closed: %v", e.Err)
}

func (e *TransportClosedError) Unwrap() error { return e.Err }

// MementoTooLargeError reports a Transition call whose memento exceeded
// the protocol's local size guard (spec.md §6).
type MementoTooLargeError struct {
	Len, Max int
}

func (e *MementoTooLargeError) Error() string {
	return fmt.Sprintf("hme: memento is %d bytes, exceeds limit of %d", e.Len, e.Max)
}

// ResourceError reports a failure scoped to one resource id, surfaced
// through a RSRC_INFO event with an error status (spec.md §4.5).
type ResourceError struct {
	ResourceID uint32
	Status     int32
	Reason     string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("hme: resource %d: %s (status %d)", e.ResourceID, e.Reason, e.Status)
}

// ApplicationError reports a caller-raised failure from within an
// Application callback; the session logs it and continues unless the
// callback also requests a close.
type ApplicationError struct {
	Err error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("hme: application error: %v", e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// ErrSessionClosed is returned by Session methods called after Close.
var ErrSessionClosed = fmt.Errorf("hme: session is closed")

// ErrNotRunning is returned by operations that require the session to
// have completed its handshake (state >= Handshaken).
var ErrNotRunning = fmt.Errorf("hme: session has not completed its handshake")
