package hme

import (
	"fmt"
	"time"
)

// Option configures a Session at construction time, following the
// functional-options pattern the teacher's ClientOption uses
// (config/src/polycall_client.go).
type Option func(*Session) error

// WithLogger overrides the default logrus-backed logger.
func WithLogger(l Logger) Option {
	return func(s *Session) error {
		if l == nil {
			return fmt.Errorf("hme: logger cannot be nil")
		}
		s.log = l
		return nil
	}
}

// WithProtocolVersion sets the major/minor bytes this session
// advertises during the handshake (spec.md §6 declares major=0,
// minor=49 as this implementation's defaults).
func WithProtocolVersion(major, minor uint8) Option {
	return func(s *Session) error {
		s.protoMajor = major
		s.protoMinor = minor
		return nil
	}
}

// WithAllowedResolutions sets the allowed-resolution list the session
// starts with, and makes its first entry the current resolution. The
// first RESOLUTION_INFO event replaces both with the receiver's reported
// values, and SET_RESOLUTION is emitted only for a resolution in the
// receiver's available list; this option does not filter that list.
func WithAllowedResolutions(list ...Resolution) Option {
	return func(s *Session) error {
		if len(list) == 0 {
			return fmt.Errorf("hme: allowed resolutions list cannot be empty")
		}
		s.allowedResolutions = append([]Resolution(nil), list...)
		s.currentResolution = list[0]
		return nil
	}
}

// WithHandshakeTimeout bounds how long Run waits for the receiver's
// 8-byte handshake reply before treating the connection as dead.
// Zero (the default) disables the timeout.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(s *Session) error {
		s.handshakeTimeout = d
		return nil
	}
}

// WithFlushOnEveryMutation disables command batching: every mutation
// helper (SetBounds, SetVisible, ...) flushes immediately instead of
// waiting for the next natural flush point (idle-acknowledge reply,
// explicit Flush, or sleep). Useful for tests and for applications
// that never call Sleep between bursts of commands.
func WithFlushOnEveryMutation(enabled bool) Option {
	return func(s *Session) error {
		s.flushEveryMutation = enabled
		return nil
	}
}
