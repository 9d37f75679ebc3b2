package proto

import "github.com/tivo-community/hme-go/internal/wire"

// KV is a single (key, value) string pair, as carried by DEVICE_INFO,
// APP_INFO(legacy pair form), and RSRC_INFO events (§4.5).
type KV struct {
	Key, Value string
}

// KeyPayload is the KEY (4) event: action, keynum, rawcode.
type KeyPayload struct {
	Action  int32
	KeyNum  int32
	RawCode int32
}

// IdlePayload is the IDLE (5) event: entering.
type IdlePayload struct {
	Entering bool
}

// FontInfoPayload is the FONT_INFO (6) event.
type FontInfoPayload struct {
	Ascent, Descent, Height, LineGap float32
	Glyphs                           map[int32]GlyphMetrics
}

// GlyphMetrics is one glyph's advance and bounding box extent.
type GlyphMetrics struct {
	Advance, Bounding float32
}

// InitInfoPayload is the INIT_INFO (7) event.
type InitInfoPayload struct {
	Params   *wire.Dict
	Memento  []byte
}

// Resolution is a (width, height, pixel_aspect_x, pixel_aspect_y) tuple.
// The third and fourth fields are stored and echoed back positionally,
// exactly as received (spec.md §9's open question on field ordering).
type Resolution struct {
	Width, Height          int32
	PixelAspectX, PixelAspectY int32
}

// ResolutionInfoPayload is the RESOLUTION_INFO (8) event.
type ResolutionInfoPayload struct {
	Current   Resolution
	Available []Resolution
}

// Event is the decoded form of one inbound message: the opcode, target
// resource id, and exactly one populated payload field.
type Event struct {
	Code       int32
	ResourceID uint32

	DeviceInfo   []KV
	AppInfo      *wire.Dict
	ResourceInfo *ResourceInfoPayload
	Key          *KeyPayload
	Idle         *IdlePayload
	FontInfo     *FontInfoPayload
	InitInfo     *InitInfoPayload
	Resolution   *ResolutionInfoPayload
}

// ResourceInfoPayload is the RSRC_INFO (3) event.
type ResourceInfoPayload struct {
	Status int32
	Pairs  []KV
}

// DecodeEvent decodes one complete inbound message body into an Event.
func DecodeEvent(msg []byte) (*Event, error) {
	code, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	resID, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]

	ev := &Event{Code: code, ResourceID: uint32(resID)}

	switch code {
	case EvDeviceInfo, EvAppInfo:
		pairs, err := decodePairs(msg)
		if err != nil {
			return nil, err
		}
		if code == EvDeviceInfo {
			ev.DeviceInfo = pairs
		} else {
			d := wire.NewDict()
			for _, kv := range pairs {
				d.SetString(kv.Key, kv.Value)
			}
			ev.AppInfo = d
		}
	case EvResourceInfo:
		status, n, err := wire.UnpackVint(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		pairs, err := decodePairs(msg)
		if err != nil {
			return nil, err
		}
		ev.ResourceInfo = &ResourceInfoPayload{Status: status, Pairs: pairs}
	case EvKey:
		action, n, err := wire.UnpackVint(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		keynum, n, err := wire.UnpackVint(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		rawcode, _, err := wire.UnpackVint(msg)
		if err != nil {
			return nil, err
		}
		ev.Key = &KeyPayload{Action: action, KeyNum: keynum, RawCode: rawcode}
	case EvIdle:
		entering, _, err := wire.UnpackBool(msg)
		if err != nil {
			return nil, err
		}
		ev.Idle = &IdlePayload{Entering: entering}
	case EvFontInfo:
		fi, err := decodeFontInfo(msg)
		if err != nil {
			return nil, err
		}
		ev.FontInfo = fi
	case EvInitInfo:
		params, n, err := wire.UnpackDict(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		memento, _, err := wire.UnpackVdata(msg)
		if err != nil {
			return nil, err
		}
		ev.InitInfo = &InitInfoPayload{Params: params, Memento: memento}
	case EvResolutionInfo:
		ri, err := decodeResolutionInfo(msg)
		if err != nil {
			return nil, err
		}
		ev.Resolution = ri
	}
	return ev, nil
}

func decodePairs(msg []byte) ([]KV, error) {
	count, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	pairs := make([]KV, 0, count)
	for i := int32(0); i < count; i++ {
		k, n, err := wire.UnpackString(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		v, n, err := wire.UnpackString(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		pairs = append(pairs, KV{Key: k, Value: v})
	}
	return pairs, nil
}

func decodeFontInfo(msg []byte) (*FontInfoPayload, error) {
	ascent, n, err := wire.UnpackFloat32(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	descent, n, err := wire.UnpackFloat32(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	height, n, err := wire.UnpackFloat32(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	lineGap, n, err := wire.UnpackFloat32(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	extras, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]
	glyphCount, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]

	glyphs := make(map[int32]GlyphMetrics, glyphCount)
	for i := int32(0); i < glyphCount; i++ {
		codepoint, n, err := wire.UnpackVint(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		advance, n, err := wire.UnpackFloat32(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		bounding, n, err := wire.UnpackFloat32(msg)
		if err != nil {
			return nil, err
		}
		msg = msg[n:]
		skip := int(extras) * 4
		if skip > len(msg) {
			return nil, wire.ErrTruncated
		}
		msg = msg[skip:]
		glyphs[codepoint] = GlyphMetrics{Advance: advance, Bounding: bounding}
	}

	return &FontInfoPayload{
		Ascent:  ascent,
		Descent: descent,
		Height:  height,
		LineGap: lineGap,
		Glyphs:  glyphs,
	}, nil
}

func decodeResolutionInfo(msg []byte) (*ResolutionInfoPayload, error) {
	fieldCount, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]

	current, rest, err := decodeResolutionFields(msg, fieldCount)
	if err != nil {
		return nil, err
	}
	msg = rest

	resCount, n, err := wire.UnpackVint(msg)
	if err != nil {
		return nil, err
	}
	msg = msg[n:]

	avail := make([]Resolution, 0, resCount)
	for i := int32(0); i < resCount; i++ {
		res, rest, err := decodeResolutionFields(msg, fieldCount)
		if err != nil {
			return nil, err
		}
		msg = rest
		avail = append(avail, res)
	}

	return &ResolutionInfoPayload{Current: current, Available: avail}, nil
}

// decodeResolutionFields reads fieldCount vints, maps the first four to
// (w, h, px, py), and skips any remaining extras (§4.5, §8 boundary test).
func decodeResolutionFields(msg []byte, fieldCount int32) (Resolution, []byte, error) {
	var res Resolution
	vals := make([]int32, 0, fieldCount)
	for i := int32(0); i < fieldCount; i++ {
		v, n, err := wire.UnpackVint(msg)
		if err != nil {
			return res, nil, err
		}
		msg = msg[n:]
		vals = append(vals, v)
	}
	if len(vals) > 0 {
		res.Width = vals[0]
	}
	if len(vals) > 1 {
		res.Height = vals[1]
	}
	if len(vals) > 2 {
		res.PixelAspectX = vals[2]
	}
	if len(vals) > 3 {
		res.PixelAspectY = vals[3]
	}
	return res, msg, nil
}
