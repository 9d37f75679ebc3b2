package hme

import (
	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
)

// Transition direction, per spec.md §4.4's TRANSITION opcode.
const (
	DirectionForward  = proto.DirectionForward
	DirectionBack     = proto.DirectionBack
	DirectionTeleport = proto.DirectionTeleport
)

// MaxMementoLen is the hard local limit on a Transition's memento blob
// (spec.md §6); exceeding it fails locally and the session continues.
const MaxMementoLen = proto.MaxMementoLen

// Transition requests the receiver launch url as the next application,
// carrying params and an opaque memento for the new application to
// recover state from. It returns MementoTooLargeError without emitting
// anything if memento exceeds MaxMementoLen.
func (s *Session) Transition(url string, direction int32, params *Dict, memento []byte) error {
	if len(memento) > MaxMementoLen {
		return &MementoTooLargeError{Len: len(memento), Max: MaxMementoLen}
	}
	if params == nil {
		params = NewDict()
	}
	s.log.Debugf("hme: transition memento fingerprint=%s len=%d", fingerprint(memento), len(memento))
	return s.emit(func(buf []byte) []byte {
		return proto.AppendTransition(buf, registry.RootStreamID, url, direction, params, memento)
	})
}
