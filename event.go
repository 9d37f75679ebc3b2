package hme

import "github.com/tivo-community/hme-go/internal/wire"

// Dict re-exports internal/wire's Dict as the public params/app-info
// type so callers never need to import an internal package.
type Dict = wire.Dict

// NewDict returns an empty Dict.
func NewDict() *Dict { return wire.NewDict() }

// KV is a single (key, value) string pair, as carried by DEVICE_INFO
// and RSRC_INFO events.
type KV struct {
	Key, Value string
}

// GlyphMetrics is one glyph's advance and bounding-box extent, part of
// a FontInfo reply.
type GlyphMetrics struct {
	Advance, Bounding float32
}

// FontInfo is the FONT_INFO event payload: metrics for a Font resource
// that has finished loading on the receiver (spec.md §3).
type FontInfo struct {
	Ascent, Descent, Height, LineGap float32
	Glyphs                           map[int32]GlyphMetrics
}

// ResourceInfo is the RSRC_INFO event payload: a resource's current
// status plus any opaque (key, value) pairs the receiver attaches (the
// status codes below follow the original implementation's RSRC_STATUS_*
// and RSRC_ERROR_* tables, which spec.md's distillation left informal).
type ResourceInfo struct {
	Status int32
	Pairs  []KV
}

// Resource status codes a RSRC_INFO event may report.
const (
	ResourceStatusUnknown    = 0
	ResourceStatusConnecting = 1
	ResourceStatusConnected  = 2
	ResourceStatusLoading    = 3
	ResourceStatusReady      = 4
	ResourceStatusPlaying    = 5
	ResourceStatusPaused     = 6
	ResourceStatusSeeking    = 7
	ResourceStatusClosed     = 8
	ResourceStatusComplete   = 9
	ResourceStatusError      = 10
)

// InitInfo is the INIT_INFO event payload: the parameters and memento
// the receiver supplied when launching or transitioning into this
// application.
type InitInfo struct {
	Params  *Dict
	Memento []byte
}

// Application is the root handler set every Session requires. All
// other handler interfaces below are optional capabilities: the
// dispatcher type-asserts the current focus holder, or the Application
// when no focus is set, against each one and calls whichever methods it
// implements, per spec.md §9's redesign of the source's duck-typed
// focus routing. The Application is not consulted while a focus holder
// is set.
type Application interface {
	// OnStart is called once, right after the handshake succeeds and
	// the root view's visibility has been emitted, before the session
	// enters Running (spec.md §4.6).
	OnStart(s *Session)
	// OnStop is called once, when the session enters Draining, before
	// the root stream's SET_ACTIVE(false) is emitted.
	OnStop(s *Session)
}

// InitInfoHandler receives the INIT_INFO event: the parameters and
// memento the receiver supplied when launching or transitioning into
// this application.
type InitInfoHandler interface {
	OnInitInfo(s *Session, info InitInfo)
}

// KeyHandler receives KEY events.
type KeyHandler interface {
	OnKey(s *Session, resourceID uint32, ev KeyEvent)
}

// DeviceInfoHandler receives DEVICE_INFO events.
type DeviceInfoHandler interface {
	OnDeviceInfo(s *Session, pairs []KV)
}

// AppInfoHandler receives APP_INFO events that are not otherwise
// claimed by the error or active dispatch rules (spec.md §4.5).
type AppInfoHandler interface {
	OnAppInfo(s *Session, info *Dict)
}

// ResourceInfoHandler receives RSRC_INFO events.
type ResourceInfoHandler interface {
	OnResourceInfo(s *Session, resourceID uint32, info ResourceInfo)
}

// FontInfoHandler receives FONT_INFO events, after the Font resource's
// runtime metrics have already been populated.
type FontInfoHandler interface {
	OnFontInfo(s *Session, resourceID uint32, info FontInfo)
}

// IdleHandler receives IDLE events. The returned bool is the "handled"
// flag the runtime echoes back via ACKNOWLEDGE_IDLE.
type IdleHandler interface {
	OnIdle(s *Session, entering bool) bool
}

// ResolutionHandler receives RESOLUTION_INFO events. The returned
// Resolution is the application's preferred choice; if it is present in
// the allowed list and differs from current, the runtime emits
// SET_RESOLUTION and updates the root view's size.
type ResolutionHandler interface {
	OnResolution(s *Session, current Resolution, available []Resolution) Resolution
}

// FocusHandler is notified of focus transitions on the object it is
// implemented by: OnFocusLost before the new holder's OnFocusGained.
type FocusHandler interface {
	OnFocusGained(s *Session)
	OnFocusLost(s *Session)
}

// ErrorHandler receives application-level errors surfaced via an
// APP_INFO event carrying "error.code".
type ErrorHandler interface {
	OnError(s *Session, code, text string)
}

// ActiveHandler receives the APP_INFO "active"="true" notification.
type ActiveHandler interface {
	OnActive(s *Session)
}
