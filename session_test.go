package hme

import (
	"bufio"
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/wire"
)

// frameSink collects every message the session under test writes, so
// tests can assert on emitted commands without racing the goroutine
// that drains them.
type frameSink struct {
	mu     sync.Mutex
	frames [][]byte
}

func (f *frameSink) add(b []byte) {
	f.mu.Lock()
	f.frames = append(f.frames, append([]byte(nil), b...))
	f.mu.Unlock()
}

func (f *frameSink) all() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.frames...)
}

func (f *frameSink) waitFor(t *testing.T, pred func([]byte) bool, timeout time.Duration) []byte {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, fr := range f.all() {
			if pred(fr) {
				return fr
			}
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("timed out waiting for expected frame")
	return nil
}

func serverHandshakeReply(major, minor byte) []byte {
	return []byte{'S', 'B', 'T', 'V', 0, 0, major, minor}
}

// drainFrames reads chunked messages off conn until it errors, storing
// each one in sink. Run as a goroutine against the receiver's end of
// the pipe. Like a real receiver, it closes its end once it reads the
// root stream's SET_ACTIVE(false), which ends the session's Draining.
func drainFrames(conn net.Conn, sink *frameSink) {
	br := bufio.NewReader(conn)
	for {
		msg, err := wire.ReadMessage(br)
		if err != nil {
			return
		}
		sink.add(msg)
		if op, n, err := wire.UnpackVint(msg); err == nil && op == proto.OpSetActive {
			if target, _, err := wire.UnpackVint(msg[n:]); err == nil && target == 1 { // root stream id
				_ = conn.Close()
				return
			}
		}
	}
}

type testApp struct {
	mu      sync.Mutex
	started bool
	stopped bool

	idleEntering []bool
	idleReturn   bool

	keys []KeyEvent
}

func (a *testApp) OnStart(s *Session) {
	a.mu.Lock()
	a.started = true
	a.mu.Unlock()
}

func (a *testApp) OnStop(s *Session) {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
}

func (a *testApp) OnIdle(s *Session, entering bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.idleEntering = append(a.idleEntering, entering)
	return a.idleReturn
}

func (a *testApp) OnKey(s *Session, resourceID uint32, ev KeyEvent) {
	a.mu.Lock()
	a.keys = append(a.keys, ev)
	a.mu.Unlock()
}

func (a *testApp) wasStarted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

func (a *testApp) wasStopped() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stopped
}

func appInfoActiveFalse() []byte {
	msg := wire.PackVint(nil, proto.EvAppInfo)
	msg = wire.PackVint(msg, 0)
	msg = wire.PackVint(msg, 1)
	msg = wire.PackString(msg, "active")
	msg = wire.PackString(msg, "false")
	return msg
}

func keyEvent(resourceID uint32, action, keynum, rawcode int32) []byte {
	msg := wire.PackVint(nil, proto.EvKey)
	msg = wire.PackVint(msg, int32(resourceID))
	msg = wire.PackVint(msg, action)
	msg = wire.PackVint(msg, keynum)
	msg = wire.PackVint(msg, rawcode)
	return msg
}

func idleEvent(entering bool) []byte {
	msg := wire.PackVint(nil, proto.EvIdle)
	msg = wire.PackVint(msg, 0)
	msg = wire.PackBool(msg, entering)
	return msg
}

func TestRunHandshakeAndCleanShutdown(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	app := &testApp{}
	sess, err := NewSession(client, app, WithLogger(NopLogger()), WithFlushOnEveryMutation(true))
	require.NoError(t, err)

	sink := &frameSink{}
	handshakeDone := make(chan struct{})

	go func() {
		var hs [8]byte
		_, err := io.ReadFull(server, hs[:])
		require.NoError(t, err)
		_, err = server.Write(serverHandshakeReply(0, 49))
		require.NoError(t, err)
		close(handshakeDone)

		go func() {
			<-handshakeDone
			_ = wire.WriteMessage(server, appInfoActiveFalse())
		}()

		drainFrames(server, sink)
	}()

	err = sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Dead, sess.State())
	assert.True(t, app.wasStarted())
	assert.True(t, app.wasStopped())

	sink.waitFor(t, func(b []byte) bool {
		op, _, err := wire.UnpackVint(b)
		return err == nil && op == proto.OpSetVisible
	}, time.Second)
}

func TestRunHandshakeMagicMismatchGoesDead(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	app := &testApp{}
	sess, err := NewSession(client, app, WithLogger(NopLogger()))
	require.NoError(t, err)

	go func() {
		var hs [8]byte
		_, _ = io.ReadFull(server, hs[:])
		_, _ = server.Write([]byte{'X', 'B', 'T', 'V', 0, 0, 0, 49})
	}()

	err = sess.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Dead, sess.State())
	assert.False(t, app.wasStarted())
}

func TestDispatchKeyRoutesToFocusOverApplication(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	app := &testApp{}
	sess, err := NewSession(client, app, WithLogger(NopLogger()), WithFlushOnEveryMutation(true))
	require.NoError(t, err)

	focus := &testApp{}
	sink := &frameSink{}

	go func() {
		var hs [8]byte
		_, _ = io.ReadFull(server, hs[:])
		_, _ = server.Write(serverHandshakeReply(0, 49))

		go func() {
			time.Sleep(20 * time.Millisecond)
			sess.SetFocus(focus)
			_ = wire.WriteMessage(server, keyEvent(2, int32(KeyActionPress), 7, 0))
			time.Sleep(20 * time.Millisecond)
			_ = wire.WriteMessage(server, appInfoActiveFalse())
		}()

		drainFrames(server, sink)
	}()

	err = sess.Run(context.Background())
	require.NoError(t, err)

	focus.mu.Lock()
	focusKeys := append([]KeyEvent(nil), focus.keys...)
	focus.mu.Unlock()
	app.mu.Lock()
	appKeys := append([]KeyEvent(nil), app.keys...)
	app.mu.Unlock()

	require.Len(t, focusKeys, 1)
	assert.EqualValues(t, KeyActionPress, focusKeys[0].Action)
	assert.EqualValues(t, 7, focusKeys[0].KeyNum)
	assert.Empty(t, appKeys, "the application handler must not see a key the focus object claimed")
}

func TestIdleAcknowledgeIsEchoedBack(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	app := &testApp{idleReturn: true}
	sess, err := NewSession(client, app, WithLogger(NopLogger()), WithFlushOnEveryMutation(true))
	require.NoError(t, err)

	sink := &frameSink{}

	go func() {
		var hs [8]byte
		_, _ = io.ReadFull(server, hs[:])
		_, _ = server.Write(serverHandshakeReply(0, 49))

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = wire.WriteMessage(server, idleEvent(true))
			time.Sleep(20 * time.Millisecond)
			_ = wire.WriteMessage(server, appInfoActiveFalse())
		}()

		drainFrames(server, sink)
	}()

	err = sess.Run(context.Background())
	require.NoError(t, err)

	ackFrame := sink.waitFor(t, func(b []byte) bool {
		op, n, err := wire.UnpackVint(b)
		if err != nil || op != proto.OpAcknowledgeIdle {
			return false
		}
		b = b[n:]
		_, n, err = wire.UnpackVint(b)
		if err != nil {
			return false
		}
		b = b[n:]
		handled, _, err := wire.UnpackBool(b)
		return err == nil && handled == true
	}, time.Second)
	require.NotNil(t, ackFrame)
}

func TestConcurrentWorkerEmitsWhileRunning(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	app := &testApp{}
	sess, err := NewSession(client, app, WithLogger(NopLogger()), WithFlushOnEveryMutation(true))
	require.NoError(t, err)

	sink := &frameSink{}

	go func() {
		var hs [8]byte
		_, _ = io.ReadFull(server, hs[:])
		_, _ = server.Write(serverHandshakeReply(0, 49))

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = wire.WriteMessage(server, appInfoActiveFalse())
		}()

		drainFrames(server, sink)
	}()

	var workerWG sync.WaitGroup
	workerWG.Add(1)
	go func() {
		defer workerWG.Done()
		time.Sleep(5 * time.Millisecond)
		_, _ = sess.NewColor(0xFF0000FF)
	}()

	err = sess.Run(context.Background())
	require.NoError(t, err)
	workerWG.Wait()

	sink.waitFor(t, func(b []byte) bool {
		op, _, err := wire.UnpackVint(b)
		return err == nil && op == proto.OpAddColor
	}, time.Second)
}
