package proto

import "github.com/tivo-community/hme-go/internal/wire"

func header(buf []byte, op int32, target uint32) []byte {
	buf = wire.PackVint(buf, op)
	buf = wire.PackVint(buf, int32(target))
	return buf
}

// AppendAdd builds ADD (1): parent_id, x, y, w, h, visible.
func AppendAdd(buf []byte, viewID, parentID uint32, x, y, w, h int32, visible bool) []byte {
	buf = header(buf, OpAdd, viewID)
	buf = wire.PackVint(buf, int32(parentID))
	buf = wire.PackVint(buf, x)
	buf = wire.PackVint(buf, y)
	buf = wire.PackVint(buf, w)
	buf = wire.PackVint(buf, h)
	buf = wire.PackBool(buf, visible)
	return buf
}

// AppendSetBounds builds SET_BOUNDS (2): x, y, w, h, animation_id.
func AppendSetBounds(buf []byte, viewID uint32, x, y, w, h int32, animID uint32) []byte {
	buf = header(buf, OpSetBounds, viewID)
	buf = wire.PackVint(buf, x)
	buf = wire.PackVint(buf, y)
	buf = wire.PackVint(buf, w)
	buf = wire.PackVint(buf, h)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendSetScale builds SET_SCALE (3): xscale, yscale, animation_id.
func AppendSetScale(buf []byte, viewID uint32, xscale, yscale float32, animID uint32) []byte {
	buf = header(buf, OpSetScale, viewID)
	buf = wire.PackFloat32(buf, xscale)
	buf = wire.PackFloat32(buf, yscale)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendSetTranslation builds SET_TRANSLATION (4): xt, yt, animation_id.
func AppendSetTranslation(buf []byte, viewID uint32, xt, yt float32, animID uint32) []byte {
	buf = header(buf, OpSetTranslation, viewID)
	buf = wire.PackFloat32(buf, xt)
	buf = wire.PackFloat32(buf, yt)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendSetTransparency builds SET_TRANSPARENCY (5): alpha, animation_id.
func AppendSetTransparency(buf []byte, viewID uint32, alpha float32, animID uint32) []byte {
	buf = header(buf, OpSetTransparency, viewID)
	buf = wire.PackFloat32(buf, alpha)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendSetVisible builds SET_VISIBLE (6): visible, animation_id.
func AppendSetVisible(buf []byte, viewID uint32, visible bool, animID uint32) []byte {
	buf = header(buf, OpSetVisible, viewID)
	buf = wire.PackBool(buf, visible)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendSetPainting builds SET_PAINTING (7): painting.
func AppendSetPainting(buf []byte, viewID uint32, painting bool) []byte {
	buf = header(buf, OpSetPainting, viewID)
	buf = wire.PackBool(buf, painting)
	return buf
}

// AppendSetResource builds SET_RESOURCE (8): resource_id, flags.
func AppendSetResource(buf []byte, viewID, resourceID uint32, flags int32) []byte {
	buf = header(buf, OpSetResource, viewID)
	buf = wire.PackVint(buf, int32(resourceID))
	buf = wire.PackVint(buf, flags)
	return buf
}

// AppendRemoveView builds View REMOVE (9): animation_id.
func AppendRemoveView(buf []byte, viewID uint32, animID uint32) []byte {
	buf = header(buf, OpRemoveView, viewID)
	buf = wire.PackVint(buf, int32(animID))
	return buf
}

// AppendAddColor builds ADD_COLOR (20): raw 4-byte big-endian ARGB.
func AppendAddColor(buf []byte, resID uint32, argb uint32) []byte {
	buf = header(buf, OpAddColor, resID)
	buf = append(buf, byte(argb>>24), byte(argb>>16), byte(argb>>8), byte(argb))
	return buf
}

// AppendAddTTF builds ADD_TTF (21): raw font-file bytes.
func AppendAddTTF(buf []byte, resID uint32, data []byte) []byte {
	buf = header(buf, OpAddTTF, resID)
	buf = append(buf, data...)
	return buf
}

// AppendAddFont builds ADD_FONT (22): ttf_id, style, size, flags.
func AppendAddFont(buf []byte, resID, ttfID uint32, style int32, size float32, flags int32) []byte {
	buf = header(buf, OpAddFont, resID)
	buf = wire.PackVint(buf, int32(ttfID))
	buf = wire.PackVint(buf, style)
	buf = wire.PackFloat32(buf, size)
	buf = wire.PackVint(buf, flags)
	return buf
}

// AppendAddText builds ADD_TEXT (23): font_id, color_id, string.
func AppendAddText(buf []byte, resID, fontID, colorID uint32, text string) []byte {
	buf = header(buf, OpAddText, resID)
	buf = wire.PackVint(buf, int32(fontID))
	buf = wire.PackVint(buf, int32(colorID))
	buf = wire.PackString(buf, text)
	return buf
}

// AppendAddImage builds ADD_IMAGE (24): raw image bytes.
func AppendAddImage(buf []byte, resID uint32, data []byte) []byte {
	buf = header(buf, OpAddImage, resID)
	buf = append(buf, data...)
	return buf
}

// AppendAddSound builds ADD_SOUND (25): raw sound bytes.
func AppendAddSound(buf []byte, resID uint32, data []byte) []byte {
	buf = header(buf, OpAddSound, resID)
	buf = append(buf, data...)
	return buf
}

// AppendAddStream builds ADD_STREAM (26): url, mime, autoplay, params.
func AppendAddStream(buf []byte, resID uint32, url, mime string, autoplay bool, params *wire.Dict) []byte {
	buf = header(buf, OpAddStream, resID)
	buf = wire.PackString(buf, url)
	buf = wire.PackString(buf, mime)
	buf = wire.PackBool(buf, autoplay)
	buf = wire.PackDict(buf, params)
	return buf
}

// AppendAddAnim builds ADD_ANIM (27): duration_ms, ease.
func AppendAddAnim(buf []byte, resID uint32, durationMS int32, ease float32) []byte {
	buf = header(buf, OpAddAnim, resID)
	buf = wire.PackVint(buf, durationMS)
	buf = wire.PackFloat32(buf, ease)
	return buf
}

// AppendSetActive builds SET_ACTIVE (40): active.
func AppendSetActive(buf []byte, resID uint32, active bool) []byte {
	buf = header(buf, OpSetActive, resID)
	buf = wire.PackBool(buf, active)
	return buf
}

// AppendSetPosition builds SET_POSITION (41): position in ms.
func AppendSetPosition(buf []byte, resID uint32, positionMS int32) []byte {
	buf = header(buf, OpSetPosition, resID)
	buf = wire.PackVint(buf, positionMS)
	return buf
}

// AppendSetSpeed builds SET_SPEED (42): speed (f32).
func AppendSetSpeed(buf []byte, resID uint32, speed float32) []byte {
	buf = header(buf, OpSetSpeed, resID)
	buf = wire.PackFloat32(buf, speed)
	return buf
}

// AppendSendEvent builds SEND_EVENT (44): opaque event payload.
func AppendSendEvent(buf []byte, resID uint32, payload []byte) []byte {
	buf = header(buf, OpSendEvent, resID)
	buf = append(buf, payload...)
	return buf
}

// AppendClose builds CLOSE (45).
func AppendClose(buf []byte, resID uint32) []byte {
	return header(buf, OpClose, resID)
}

// AppendRemoveResource builds Resource REMOVE (46).
func AppendRemoveResource(buf []byte, resID uint32) []byte {
	return header(buf, OpRemoveRsrc, resID)
}

// AppendAcknowledgeIdle builds ACKNOWLEDGE_IDLE (60): handled.
func AppendAcknowledgeIdle(buf []byte, resID uint32, handled bool) []byte {
	buf = header(buf, OpAcknowledgeIdle, resID)
	buf = wire.PackBool(buf, handled)
	return buf
}

// AppendTransition builds TRANSITION (61): url, direction, params, memento.
// The caller must have already validated len(memento) <= MaxMementoLen.
func AppendTransition(buf []byte, resID uint32, url string, direction int32, params *wire.Dict, memento []byte) []byte {
	buf = header(buf, OpTransition, resID)
	buf = wire.PackString(buf, url)
	buf = wire.PackVint(buf, direction)
	buf = wire.PackDict(buf, params)
	buf = wire.PackVdata(buf, memento)
	return buf
}

// AppendSetResolution builds SET_RESOLUTION (62): w, h, px, py.
func AppendSetResolution(buf []byte, resID uint32, w, h, px, py int32) []byte {
	buf = header(buf, OpSetResolution, resID)
	buf = wire.PackVint(buf, w)
	buf = wire.PackVint(buf, h)
	buf = wire.PackVint(buf, px)
	buf = wire.PackVint(buf, py)
	return buf
}
