package hme

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
	"github.com/tivo-community/hme-go/internal/wire"
)

// Session is the client-side runtime for one HME connection: one TCP
// stream, one scene graph, one event loop. A Session never reconnects
// (spec.md §1); a new connection requires a new Session.
//
// The single mutex below guards the outbound writer, the resource
// registry, and the connection itself, per spec.md §5's and §9's
// "writer+registry as a single mutex-guarded object" resolution of the
// threaded-workers-sharing-one-stream problem. The event loop runs on
// whichever goroutine calls Run; any number of additional worker
// goroutines may call View/Resource mutation methods concurrently.
type Session struct {
	mu   sync.Mutex
	conn io.ReadWriteCloser
	br   *bufio.Reader
	out  []byte // pending outbound bytes, built up under mu

	reg *registry.Registry

	app   Application
	focus interface{}

	state  State
	active bool
	closed bool

	log                Logger
	protoMajor         uint8
	protoMinor         uint8
	peerMajor          uint8
	peerMinor          uint8
	handshakeTimeout   time.Duration
	flushEveryMutation bool

	allowedResolutions []Resolution
	currentResolution  Resolution

	root *View
}

// NewSession constructs a Session bound to an already-open connection
// (the HTTP front door that produced it is explicitly out of scope,
// spec.md §1). The connection must already be positioned at the start
// of the HME byte stream; Run performs the handshake.
func NewSession(conn io.ReadWriteCloser, app Application, opts ...Option) (*Session, error) {
	if conn == nil {
		return nil, fmt.Errorf("hme: conn cannot be nil")
	}
	if app == nil {
		return nil, fmt.Errorf("hme: app cannot be nil")
	}
	s := &Session{
		conn:               conn,
		br:                 bufio.NewReader(conn),
		reg:                registry.New(),
		app:                app,
		state:              Idle,
		log:                defaultLogger(),
		protoMajor:         0,
		protoMinor:         49,
		currentResolution:  DefaultResolution,
		allowedResolutions: []Resolution{DefaultResolution},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.root = newView(s, registry.RootViewID)
	return s, nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Root returns the root view (id 2), already present before Run is
// called.
func (s *Session) Root() *View { return s.root }

// Log returns the session's logger, for use by application code that
// wants to share it.
func (s *Session) Log() Logger { return s.log }

// SetFocus installs handler as the focus object. Per spec.md §4.5,
// losing the previous holder's focus is notified before the new
// holder's focus is gained; handler may be nil to clear focus.
func (s *Session) SetFocus(handler interface{}) {
	s.mu.Lock()
	old := s.focus
	s.focus = handler
	s.mu.Unlock()

	if fh, ok := old.(FocusHandler); ok {
		s.protect(func() { fh.OnFocusLost(s) })
	}
	if fh, ok := handler.(FocusHandler); ok {
		s.protect(func() { fh.OnFocusGained(s) })
	}
}

// Close tears the session down from outside the event loop: it marks
// the session closed, ends Run's event loop, and closes the
// connection. Any View or Resource mutation, resource constructor, or
// Transition called afterward returns ErrSessionClosed. Safe to call
// more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.active = false
	s.state = Dead
	s.mu.Unlock()
	return s.conn.Close()
}

// checkOpenLocked reports whether a mutation may proceed, assuming the
// caller already holds s.mu. It returns ErrSessionClosed once Close has
// been called, and ErrNotRunning before the handshake has completed
// (spec.md §4.6: a View/Resource cannot be mutated before the session
// has something to send it to).
func (s *Session) checkOpenLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.state == Idle {
		return ErrNotRunning
	}
	return nil
}

// Run performs the handshake and then runs the event loop until the
// session reaches Dead, returning the terminal error (nil on a clean
// shutdown). It blocks until the connection closes, the application
// clears active, or ctx is cancelled; like active, ctx is checked
// between events, not while a read is blocked.
func (s *Session) Run(ctx context.Context) error {
	if err := s.handshake(); err != nil {
		_ = s.Close()
		return err
	}

	s.mu.Lock()
	s.state = Handshaken
	s.active = true
	s.mu.Unlock()

	s.root.SetVisible(true, Instant())
	if err := s.flush(); err != nil {
		return s.die(err)
	}

	s.protect(func() { s.app.OnStart(s) })

	s.mu.Lock()
	if !s.closed {
		s.state = Running
	}
	s.mu.Unlock()

	runErr := s.eventLoop(ctx)

	s.mu.Lock()
	if !s.closed {
		s.state = Draining
	}
	s.mu.Unlock()

	s.protect(func() { s.app.OnStop(s) })

	s.emitRootStreamInactive()
	_ = s.flush()
	s.drainRemaining()

	_ = s.Close()

	return runErr
}

func (s *Session) eventLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.isActive() {
			return nil
		}

		msg, err := wire.ReadMessage(s.br)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return &TransportClosedError{Err: err}
		}

		ev, err := proto.DecodeEvent(msg)
		if err != nil {
			return err
		}

		s.dispatch(ev)
	}
}

func (s *Session) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ClearActive is the sole cancellation primitive (spec.md §5): it ends
// the Running loop after the current event finishes.
func (s *Session) ClearActive() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

func (s *Session) die(err error) error {
	_ = s.Close()
	return err
}

func (s *Session) emitRootStreamInactive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = proto.AppendSetActive(s.out, registry.RootStreamID, false)
}

// drainRemaining reads and discards any messages still arriving after
// Draining begins, until the connection closes (spec.md §4.6).
func (s *Session) drainRemaining() {
	for {
		_, err := wire.ReadMessage(s.br)
		if err != nil {
			return
		}
	}
}

// Sleep flushes the outbound writer, then pauses the calling goroutine
// for d. A failed flush cancels the session (spec.md §5). Worker
// goroutines use this to pace animation bursts; the reader goroutine
// never calls it.
func (s *Session) Sleep(d time.Duration) error {
	if err := s.flush(); err != nil {
		s.ClearActive()
		return err
	}
	time.Sleep(d)
	return nil
}

// Flush forces any buffered outbound commands to be written now. The
// library already flushes at every natural point (handshake, idle
// acknowledgement, Sleep, session teardown); call this directly only
// when WithFlushOnEveryMutation(false) is in effect and a worker needs
// a command visible before its next Sleep.
func (s *Session) Flush() error {
	return s.flush()
}

func (s *Session) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Session) flushLocked() error {
	if len(s.out) == 0 {
		return nil
	}
	err := wire.WriteMessage(s.conn, s.out)
	s.out = s.out[:0]
	if err != nil {
		s.active = false
		return &TransportClosedError{Err: err}
	}
	return nil
}

// emit appends raw command bytes to the outbound buffer under the
// session lock, flushing immediately if WithFlushOnEveryMutation was
// set. build receives the current tail of the buffer and must return
// the buffer with its bytes appended.
func (s *Session) emit(build func([]byte) []byte) error {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.out = build(s.out)
	flushNow := s.flushEveryMutation
	s.mu.Unlock()
	if flushNow {
		return s.flush()
	}
	return nil
}
