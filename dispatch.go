package hme

import (
	"fmt"

	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
)

// protect runs fn, recovering any panic into an ApplicationError that
// is logged and then discarded: one Application or focus callback's
// failure must not bring down the event loop (spec.md §7).
func (s *Session) protect(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("hme: %v", &ApplicationError{Err: fmt.Errorf("%v", r)})
		}
	}()
	fn()
}

// protectBool is protect for a callback that returns a bool, defaulting
// to false if the callback panics.
func (s *Session) protectBool(fn func() bool) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("hme: %v", &ApplicationError{Err: fmt.Errorf("%v", r)})
			result = false
		}
	}()
	return fn()
}

// dispatch routes one decoded event to the matching capability of the
// object handler() returns: the focus object while one is set, the
// Application otherwise (spec.md §9's capability-set redesign of the
// source's duck-typed focus routing). While a focus object is set, an
// event whose capability it does not implement is not delivered to the
// Application.
func (s *Session) dispatch(ev *proto.Event) {
	switch ev.Code {
	case proto.EvDeviceInfo:
		if h, ok := s.handler().(DeviceInfoHandler); ok {
			pairs := make([]KV, len(ev.DeviceInfo))
			for i, p := range ev.DeviceInfo {
				pairs[i] = KV{Key: p.Key, Value: p.Value}
			}
			s.protect(func() { h.OnDeviceInfo(s, pairs) })
		}

	case proto.EvAppInfo:
		s.dispatchAppInfo(ev.AppInfo)

	case proto.EvResourceInfo:
		s.dispatchResourceInfo(ev.ResourceID, ev.ResourceInfo)

	case proto.EvKey:
		if h, ok := s.handler().(KeyHandler); ok {
			s.protect(func() {
				h.OnKey(s, ev.ResourceID, KeyEvent{
					Action:  KeyAction(ev.Key.Action),
					KeyNum:  ev.Key.KeyNum,
					RawCode: ev.Key.RawCode,
				})
			})
		}

	case proto.EvIdle:
		s.dispatchIdle(ev.Idle.Entering)

	case proto.EvFontInfo:
		s.dispatchFontInfo(ev.ResourceID, ev.FontInfo)

	case proto.EvInitInfo:
		if h, ok := s.handler().(InitInfoHandler); ok {
			info := InitInfo{Params: ev.InitInfo.Params, Memento: ev.InitInfo.Memento}
			s.protect(func() { h.OnInitInfo(s, info) })
		}

	case proto.EvResolutionInfo:
		s.dispatchResolutionInfo(ev.Resolution)
	}
}

// handler returns the focus object if one is set, otherwise the
// Application, as the target for capability dispatch.
func (s *Session) handler() interface{} {
	s.mu.Lock()
	focus := s.focus
	s.mu.Unlock()
	if focus != nil {
		return focus
	}
	return s.app
}

// dispatchAppInfo implements spec.md §4.5's three special-cased
// APP_INFO keys before falling back to the generic handler.
func (s *Session) dispatchAppInfo(info *Dict) {
	if code, ok := info.GetString("error.code"); ok {
		text, _ := info.GetString("error.text")
		if h, ok := s.handler().(ErrorHandler); ok {
			s.protect(func() { h.OnError(s, code, text) })
		}
		return
	}
	if active, ok := info.GetString("active"); ok {
		switch active {
		case "true":
			if h, ok := s.handler().(ActiveHandler); ok {
				s.protect(func() { h.OnActive(s) })
			}
			return
		case "false":
			s.ClearActive()
			return
		}
	}
	if h, ok := s.handler().(AppInfoHandler); ok {
		s.protect(func() { h.OnAppInfo(s, info) })
	}
}

// dispatchResourceInfo forwards a RSRC_INFO event to ResourceInfoHandler
// and, when the receiver reports a resource-scoped error, additionally
// builds a ResourceError and surfaces it through ErrorHandler, mirroring
// how dispatchAppInfo surfaces an APP_INFO "error.code" (spec.md §4.5,
// §7).
func (s *Session) dispatchResourceInfo(resourceID uint32, ri *proto.ResourceInfoPayload) {
	pairs := make([]KV, len(ri.Pairs))
	for i, p := range ri.Pairs {
		pairs[i] = KV{Key: p.Key, Value: p.Value}
	}
	info := ResourceInfo{Status: ri.Status, Pairs: pairs}

	if ri.Status == ResourceStatusError {
		reason := "resource reported an error"
		for _, p := range pairs {
			if p.Key == "reason" || p.Key == "error" {
				reason = p.Value
				break
			}
		}
		rerr := &ResourceError{ResourceID: resourceID, Status: ri.Status, Reason: reason}
		s.log.Errorf("hme: %v", rerr)
		if h, ok := s.handler().(ErrorHandler); ok {
			s.protect(func() { h.OnError(s, "resource", rerr.Error()) })
		}
	}

	if h, ok := s.handler().(ResourceInfoHandler); ok {
		s.protect(func() { h.OnResourceInfo(s, resourceID, info) })
	}
}

func (s *Session) dispatchIdle(entering bool) {
	handled := false
	if h, ok := s.handler().(IdleHandler); ok {
		handled = s.protectBool(func() bool { return h.OnIdle(s, entering) })
	}
	_ = s.emit(func(buf []byte) []byte {
		return proto.AppendAcknowledgeIdle(buf, registry.RootStreamID, handled)
	})
	_ = s.flush()
}

func (s *Session) dispatchFontInfo(resourceID uint32, fi *proto.FontInfoPayload) {
	glyphs := make(map[int32]GlyphMetrics, len(fi.Glyphs))
	for k, v := range fi.Glyphs {
		glyphs[k] = GlyphMetrics{Advance: v.Advance, Bounding: v.Bounding}
	}
	info := FontInfo{
		Ascent:  fi.Ascent,
		Descent: fi.Descent,
		Height:  fi.Height,
		LineGap: fi.LineGap,
		Glyphs:  glyphs,
	}

	s.mu.Lock()
	if r, ok := s.reg.Resource(resourceID); ok && r.Kind == registry.KindFont {
		r.FontRuntime = fi
	}
	s.mu.Unlock()

	if h, ok := s.handler().(FontInfoHandler); ok {
		s.protect(func() { h.OnFontInfo(s, resourceID, info) })
	}
}

func (s *Session) dispatchResolutionInfo(ri *proto.ResolutionInfoPayload) {
	current := fromProtoResolution(ri.Current)
	available := make([]Resolution, len(ri.Available))
	for i, r := range ri.Available {
		available[i] = fromProtoResolution(r)
	}

	s.mu.Lock()
	s.currentResolution = current
	s.allowedResolutions = available
	s.mu.Unlock()

	h, ok := s.handler().(ResolutionHandler)
	if !ok {
		return
	}
	preferred := current
	s.protect(func() { preferred = h.OnResolution(s, current, available) })
	if preferred == current || !containsResolution(available, preferred) {
		return
	}

	_ = s.emit(func(buf []byte) []byte {
		return proto.AppendSetResolution(buf, registry.RootStreamID,
			preferred.Width, preferred.Height, preferred.PixelAspectX, preferred.PixelAspectY)
	})
	_ = s.flush()

	s.mu.Lock()
	s.currentResolution = preferred
	s.mu.Unlock()

	s.root.setSizeFromResolution(preferred)
}
