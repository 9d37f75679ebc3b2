package hme

import "github.com/tivo-community/hme-go/internal/proto"

// Resolution is a (width, height, pixel_aspect_x, pixel_aspect_y)
// tuple. The third and fourth fields are carried positionally, exactly
// as the receiver sent them (spec.md §9's open question on field
// ordering): this package never reinterprets them as (aspect_y,
// aspect_x).
type Resolution struct {
	Width, Height           int32
	PixelAspectX, PixelAspectY int32
}

// DefaultResolution is the resolution a session assumes before any
// RESOLUTION_INFO event arrives, matching the original implementation's
// bootstrap default (original_source/hme.py).
var DefaultResolution = Resolution{Width: 640, Height: 480, PixelAspectX: 1, PixelAspectY: 1}

// Well-known resolutions commonly offered in a RESOLUTION_INFO's
// available list.
var (
	Resolution480i  = Resolution{Width: 640, Height: 480, PixelAspectX: 1, PixelAspectY: 1}
	Resolution480p  = Resolution{Width: 720, Height: 480, PixelAspectX: 8, PixelAspectY: 9}
	Resolution720p  = Resolution{Width: 1280, Height: 720, PixelAspectX: 1, PixelAspectY: 1}
	Resolution1080i = Resolution{Width: 1920, Height: 1080, PixelAspectX: 1, PixelAspectY: 1}
)

func fromProtoResolution(r proto.Resolution) Resolution {
	return Resolution{
		Width:        r.Width,
		Height:       r.Height,
		PixelAspectX: r.PixelAspectX,
		PixelAspectY: r.PixelAspectY,
	}
}

func containsResolution(list []Resolution, r Resolution) bool {
	for _, c := range list {
		if c == r {
			return true
		}
	}
	return false
}
