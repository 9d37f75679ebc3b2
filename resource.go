package hme

import (
	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
	"github.com/tivo-community/hme-go/internal/wire"
)

// FontStyle is a bitmask of style attributes for NewFont, recovered
// from the original implementation's FONT_* constants
// (original_source/hme.py): FontBold and FontItalic combine to request
// a bold-italic face.
type FontStyle int32

const (
	FontPlain      FontStyle = 0
	FontBold       FontStyle = 1
	FontItalic     FontStyle = 2
	FontBoldItalic FontStyle = FontBold | FontItalic
)

// Resource flag bits, recovered from the original implementation's
// RSRC_* constants (original_source/hme.py); their meaning is
// resource-kind specific and interpreted only by View.SetResource's
// flags argument.
const (
	ResourceHAlignLeft   = 1
	ResourceHAlignCenter = 2
	ResourceHAlignRight  = 4
	ResourceVAlignTop    = 0x10
	ResourceVAlignCenter = 0x20
	ResourceVAlignBottom = 0x40
	ResourceTextWrap     = 0x0100
	ResourceImageHFit    = 0x1000
	ResourceImageVFit    = 0x2000
	ResourceImageBestFit = 0x4000
)

// Resource is a handle onto one entry of the resource registry (spec.md
// §3). Resources created without an application-provided name are
// reference-counted and removed on last Release; named resources (TTF,
// Image) persist until Remove is called explicitly.
type Resource struct {
	s  *Session
	id uint32
}

// ID returns the resource's registry id.
func (r *Resource) ID() uint32 { return r.id }

func newResourceHandle(s *Session, id uint32) *Resource {
	return &Resource{s: s, id: id}
}

func (r *Resource) retain() {
	r.s.mu.Lock()
	if res, ok := r.s.reg.Resource(r.id); ok {
		res.Refs++
	}
	r.s.mu.Unlock()
}

// Release decrements this resource's reference count. Unnamed
// resources are removed (emitting the REMOVE command) once their count
// reaches zero; named resources are unaffected and require an explicit
// Remove call.
func (r *Resource) Release() error {
	r.s.mu.Lock()
	if err := r.s.checkOpenLocked(); err != nil {
		r.s.mu.Unlock()
		return err
	}
	res, ok := r.s.reg.Resource(r.id)
	if !ok {
		r.s.mu.Unlock()
		return nil
	}
	res.Refs--
	remove := !res.Named() && res.Refs <= 0
	if remove {
		r.s.out = proto.AppendRemoveResource(r.s.out, r.id)
		r.s.reg.RemoveResource(r.id)
	}
	flushNow := r.s.flushEveryMutation
	r.s.mu.Unlock()
	if flushNow {
		return r.s.flush()
	}
	return nil
}

// Remove explicitly removes this resource regardless of name or
// reference count.
func (r *Resource) Remove() error {
	r.s.mu.Lock()
	if err := r.s.checkOpenLocked(); err != nil {
		r.s.mu.Unlock()
		return err
	}
	r.s.out = proto.AppendRemoveResource(r.s.out, r.id)
	r.s.reg.RemoveResource(r.id)
	flushNow := r.s.flushEveryMutation
	r.s.mu.Unlock()
	if flushNow {
		return r.s.flush()
	}
	return nil
}

// finishCreate unlocks s.mu and, if WithFlushOnEveryMutation is set,
// flushes the command the caller just appended to s.out.
func (s *Session) finishCreate(id uint32) (*Resource, error) {
	flushNow := s.flushEveryMutation
	s.mu.Unlock()
	if flushNow {
		if err := s.flush(); err != nil {
			return nil, err
		}
	}
	return newResourceHandle(s, id), nil
}

// NewColor returns a Color resource for argb, reusing a cached resource
// if one already exists (spec.md §3's content-keyed cache semantics).
func (s *Session) NewColor(argb uint32) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if id, ok := s.reg.LookupColor(argb); ok {
		if res, ok := s.reg.Resource(id); ok {
			res.Refs++
		}
		s.mu.Unlock()
		return newResourceHandle(s, id), nil
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddColor(s.out, id, argb)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindColor, Color: argb, Refs: 1})
	s.reg.CacheColor(argb, id)
	return s.finishCreate(id)
}

// NewTTF returns a TTF resource for the given app-provided name and
// font-file bytes, reusing a cached resource of the same name. TTF
// resources persist until explicitly removed.
func (s *Session) NewTTF(name string, data []byte) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if id, ok := s.reg.LookupTTF(name); ok {
		s.mu.Unlock()
		return newResourceHandle(s, id), nil
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddTTF(s.out, id, data)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindTTF, Name: name, TTFData: data})
	s.reg.CacheTTF(name, id)
	return s.finishCreate(id)
}

// NewFont returns a Font resource for (ttf, style, size, flags),
// reusing a cached resource with the same key.
func (s *Session) NewFont(ttf *Resource, style FontStyle, size float32, flags int32) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	key := registry.FontKey{TTFID: ttf.id, Style: int32(style), Size: size, Flags: flags}
	if id, ok := s.reg.LookupFont(key); ok {
		if res, ok := s.reg.Resource(id); ok {
			res.Refs++
		}
		s.mu.Unlock()
		return newResourceHandle(s, id), nil
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddFont(s.out, id, ttf.id, int32(style), size, flags)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindFont, FontKey: key, Refs: 1})
	s.reg.CacheFont(key, id)
	return s.finishCreate(id)
}

// NewText returns a new Text resource; Text is never cached (each call
// allocates a fresh resource, spec.md §3).
func (s *Session) NewText(font, color *Resource, text string) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddText(s.out, id, font.id, color.id, text)
	s.reg.PutResource(&registry.Resource{
		ID: id, Kind: registry.KindText, Refs: 1,
		TextFontID: font.id, TextColorID: color.id, TextString: text,
	})
	return s.finishCreate(id)
}

// NewImage returns an Image resource for the given app-provided name
// and encoded image bytes, reusing a cached resource of the same name.
// Image resources persist until explicitly removed.
func (s *Session) NewImage(name string, data []byte) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if id, ok := s.reg.LookupImage(name); ok {
		s.mu.Unlock()
		return newResourceHandle(s, id), nil
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddImage(s.out, id, data)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindImage, Name: name})
	s.reg.CacheImage(name, id)
	return s.finishCreate(id)
}

// NewSound returns a new Sound resource from raw audio bytes; Sound is
// never cached.
func (s *Session) NewSound(data []byte) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddSound(s.out, id, data)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindSound, Refs: 1})
	return s.finishCreate(id)
}

// NewStream returns a new Stream resource; Stream is never cached.
func (s *Session) NewStream(url, mime string, autoplay bool, params *Dict) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	id := s.reg.AllocID()
	if params == nil {
		params = wire.NewDict()
	}
	s.out = proto.AppendAddStream(s.out, id, url, mime, autoplay, params)
	s.reg.PutResource(&registry.Resource{
		ID: id, Kind: registry.KindStream, Refs: 1,
		StreamURL: url, StreamMIME: mime, StreamAutoplay: autoplay, StreamParams: params,
	})
	return s.finishCreate(id)
}

// SetActive starts or stops a Stream/Sound resource's playback.
func (r *Resource) SetActive(active bool) error {
	return r.s.emit(func(buf []byte) []byte {
		return proto.AppendSetActive(buf, r.id, active)
	})
}

// SetPosition seeks a Stream resource to positionMS milliseconds.
func (r *Resource) SetPosition(positionMS int32) error {
	return r.s.emit(func(buf []byte) []byte {
		return proto.AppendSetPosition(buf, r.id, positionMS)
	})
}

// SetSpeed sets a Stream resource's playback speed.
func (r *Resource) SetSpeed(speed float32) error {
	return r.s.emit(func(buf []byte) []byte {
		return proto.AppendSetSpeed(buf, r.id, speed)
	})
}

// SendEvent sends an opaque application-defined payload to this
// resource (typically a Stream).
func (r *Resource) SendEvent(payload []byte) error {
	return r.s.emit(func(buf []byte) []byte {
		return proto.AppendSendEvent(buf, r.id, payload)
	})
}

// Close closes a Stream resource's underlying connection without
// removing the resource itself.
func (r *Resource) Close() error {
	return r.s.emit(func(buf []byte) []byte {
		return proto.AppendClose(buf, r.id)
	})
}

// FontInfo returns the font metrics the receiver has reported for this
// Font resource, or nil if FONT_INFO has not arrived yet.
func (r *Resource) FontInfo() *FontInfo {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reg.Resource(r.id)
	if !ok || res.FontRuntime == nil {
		return nil
	}
	glyphs := make(map[int32]GlyphMetrics, len(res.FontRuntime.Glyphs))
	for k, v := range res.FontRuntime.Glyphs {
		glyphs[k] = GlyphMetrics{Advance: v.Advance, Bounding: v.Bounding}
	}
	return &FontInfo{
		Ascent:  res.FontRuntime.Ascent,
		Descent: res.FontRuntime.Descent,
		Height:  res.FontRuntime.Height,
		LineGap: res.FontRuntime.LineGap,
		Glyphs:  glyphs,
	}
}
