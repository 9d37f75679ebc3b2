package hme

// State is one of the five session lifecycle states (spec.md §4.6).
type State int32

const (
	// Idle is the state before Run is called.
	Idle State = iota
	// Handshaken is entered once the SBTV magic exchange succeeds.
	Handshaken
	// Running is the main event-loop state; handlers fire here.
	Running
	// Draining is entered once active clears or a fatal error occurs;
	// user cleanup runs and remaining inbound events are discarded.
	Draining
	// Dead is terminal; every subsequent Session operation is a no-op.
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Handshaken:
		return "handshaken"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}
