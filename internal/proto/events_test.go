package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivo-community/hme-go/internal/wire"
)

func encodeHeader(code int32, resID uint32) []byte {
	buf := wire.PackVint(nil, code)
	buf = wire.PackVint(buf, int32(resID))
	return buf
}

func TestDecodeEventKey(t *testing.T) {
	buf := encodeHeader(EvKey, 2)
	buf = wire.PackVint(buf, KeyActionPress)
	buf = wire.PackVint(buf, 42)
	buf = wire.PackVint(buf, 999)

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.Key)
	assert.EqualValues(t, KeyActionPress, ev.Key.Action)
	assert.EqualValues(t, 42, ev.Key.KeyNum)
	assert.EqualValues(t, 999, ev.Key.RawCode)
}

func TestDecodeEventIdle(t *testing.T) {
	buf := encodeHeader(EvIdle, 0)
	buf = wire.PackBool(buf, true)

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.Idle)
	assert.True(t, ev.Idle.Entering)
}

func TestDecodeEventAppInfo(t *testing.T) {
	buf := encodeHeader(EvAppInfo, 0)
	buf = wire.PackVint(buf, 2)
	buf = wire.PackString(buf, "name")
	buf = wire.PackString(buf, "clock")
	buf = wire.PackString(buf, "version")
	buf = wire.PackString(buf, "1.0")

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.AppInfo)
	name, ok := ev.AppInfo.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "clock", name)
}

func TestDecodeEventDeviceInfo(t *testing.T) {
	buf := encodeHeader(EvDeviceInfo, 0)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackString(buf, "make")
	buf = wire.PackString(buf, "tivo")

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.Len(t, ev.DeviceInfo, 1)
	assert.Equal(t, KV{Key: "make", Value: "tivo"}, ev.DeviceInfo[0])
}

func TestDecodeEventResourceInfo(t *testing.T) {
	buf := encodeHeader(EvResourceInfo, 7)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackString(buf, "reason")
	buf = wire.PackString(buf, "eof")

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.ResourceInfo)
	assert.EqualValues(t, 1, ev.ResourceInfo.Status)
	require.Len(t, ev.ResourceInfo.Pairs, 1)
	assert.Equal(t, "eof", ev.ResourceInfo.Pairs[0].Value)
}

func TestDecodeEventFontInfoNoExtras(t *testing.T) {
	buf := encodeHeader(EvFontInfo, 5)
	buf = wire.PackFloat32(buf, 10.5)
	buf = wire.PackFloat32(buf, -2.5)
	buf = wire.PackFloat32(buf, 13.0)
	buf = wire.PackFloat32(buf, 1.0)
	buf = wire.PackVint(buf, 0) // extras
	buf = wire.PackVint(buf, 1) // glyph count
	buf = wire.PackVint(buf, 65)
	buf = wire.PackFloat32(buf, 7.0)
	buf = wire.PackFloat32(buf, 6.5)

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.FontInfo)
	assert.Equal(t, float32(10.5), ev.FontInfo.Ascent)
	require.Contains(t, ev.FontInfo.Glyphs, int32(65))
	assert.Equal(t, float32(7.0), ev.FontInfo.Glyphs[65].Advance)
}

func TestDecodeEventFontInfoSkipsExtraBytes(t *testing.T) {
	buf := encodeHeader(EvFontInfo, 5)
	buf = wire.PackFloat32(buf, 0)
	buf = wire.PackFloat32(buf, 0)
	buf = wire.PackFloat32(buf, 0)
	buf = wire.PackFloat32(buf, 0)
	buf = wire.PackVint(buf, 1) // extras: one extra f32 (4 bytes) per glyph
	buf = wire.PackVint(buf, 1) // glyph count
	buf = wire.PackVint(buf, 65)
	buf = wire.PackFloat32(buf, 1.0)
	buf = wire.PackFloat32(buf, 2.0)
	buf = append(buf, 0xDE, 0xAD, 0xBE, 0xEF) // the skipped extra field

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.Contains(t, ev.FontInfo.Glyphs, int32(65))
	assert.Equal(t, float32(1.0), ev.FontInfo.Glyphs[65].Advance)
}

func TestDecodeEventResolutionInfoBoundary(t *testing.T) {
	// field_count=6 exercises the "extras beyond the first four are
	// skipped" boundary case (spec.md §8).
	buf := encodeHeader(EvResolutionInfo, 0)
	buf = wire.PackVint(buf, 6) // field_count
	// current
	buf = wire.PackVint(buf, 1920)
	buf = wire.PackVint(buf, 1080)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackVint(buf, 60) // extra field 5
	buf = wire.PackVint(buf, 0) // extra field 6
	buf = wire.PackVint(buf, 1) // available count
	buf = wire.PackVint(buf, 1280)
	buf = wire.PackVint(buf, 720)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackVint(buf, 1)
	buf = wire.PackVint(buf, 30)
	buf = wire.PackVint(buf, 0)

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.Resolution)
	assert.EqualValues(t, 1920, ev.Resolution.Current.Width)
	assert.EqualValues(t, 1080, ev.Resolution.Current.Height)
	require.Len(t, ev.Resolution.Available, 1)
	assert.EqualValues(t, 1280, ev.Resolution.Available[0].Width)
}

func TestDecodeEventInitInfo(t *testing.T) {
	buf := encodeHeader(EvInitInfo, 0)
	d := wire.NewDict()
	d.SetString("arg", "val")
	buf = wire.PackDict(buf, d)
	buf = wire.PackVdata(buf, []byte("memento-bytes"))

	ev, err := DecodeEvent(buf)
	require.NoError(t, err)
	require.NotNil(t, ev.InitInfo)
	v, ok := ev.InitInfo.Params.GetString("arg")
	require.True(t, ok)
	assert.Equal(t, "val", v)
	assert.Equal(t, []byte("memento-bytes"), ev.InitInfo.Memento)
}

func TestDecodeEventTruncatedReturnsError(t *testing.T) {
	buf := encodeHeader(EvKey, 0)
	buf = wire.PackVint(buf, KeyActionPress)
	// missing keynum/rawcode
	_, err := DecodeEvent(buf)
	assert.Error(t, err)
}
