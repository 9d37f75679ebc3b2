package registry

import (
	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/wire"
)

// Kind identifies which of HME's resource shapes a Resource holds (§3).
type Kind uint8

const (
	KindColor Kind = iota
	KindTTF
	KindFont
	KindText
	KindImage
	KindSound
	KindStream
	KindAnimation
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindTTF:
		return "ttf"
	case KindFont:
		return "font"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindSound:
		return "sound"
	case KindStream:
		return "stream"
	case KindAnimation:
		return "animation"
	default:
		return "unknown"
	}
}

// FontKey is the cache key for Font resources: (ttf id, style, size, flags).
type FontKey struct {
	TTFID uint32
	Style int32
	Size  float32
	Flags int32
}

// AnimKey is the cache key for Animation resources: (duration_ms, ease).
type AnimKey struct {
	DurationMS int32
	Ease       float32
}

// Resource is the in-memory shadow of a single server-side resource,
// keyed by id, with kind-specific fields populated according to Kind.
// Named resources (Name != "") persist until explicit removal; unnamed
// resources are reference-counted and auto-removed on last release
// (spec.md §9's "implicit finalization" redesign note).
type Resource struct {
	ID   uint32
	Kind Kind
	Name string // cache key for TTF/Image; empty for every other kind
	Refs int32

	// Color
	Color uint32

	// TTF
	TTFData []byte

	// Font
	FontKey     FontKey
	// FontRuntime is populated once the receiver replies with FONT_INFO
	// metrics (§3 "Font runtime info"); nil until then.
	FontRuntime *proto.FontInfoPayload

	// Text
	TextFontID  uint32
	TextColorID uint32
	TextString  string

	// Image
	// (image bytes are not retained after the ADD_IMAGE command is sent)

	// Sound
	// (sound bytes are likewise transient)

	// Stream
	StreamURL      string
	StreamMIME     string
	StreamAutoplay bool
	StreamParams   *wire.Dict

	// Animation
	AnimKey AnimKey
}

// Named reports whether this resource persists until explicit removal
// rather than being reference-counted for implicit removal.
func (r *Resource) Named() bool {
	return r.Name != ""
}
