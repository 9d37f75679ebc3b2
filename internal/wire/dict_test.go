package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictEncodesKeysSorted(t *testing.T) {
	d := NewDict()
	d.SetString("zebra", "z")
	d.SetString("apple", "a")
	d.SetString("mango", "m")

	buf := PackDict(nil, d)

	// Decode manually, checking key order as encountered.
	var keys []string
	rest := buf
	for {
		k, n, err := UnpackString(rest)
		require.NoError(t, err)
		rest = rest[n:]
		if k == "" {
			break
		}
		keys = append(keys, k)
		// skip this entry's values until tagEnd
		for {
			tag := rest[0]
			rest = rest[1:]
			if tag == tagEnd {
				break
			}
			_, n, err := UnpackString(rest)
			require.NoError(t, err)
			rest = rest[n:]
		}
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, keys)
}

func TestDictRoundTrip(t *testing.T) {
	inner := NewDict()
	inner.SetString("x", "1")
	inner.SetString("y", "2")

	d := NewDict()
	d.SetString("name", "root")
	d.Set("nested", DictValue(inner))
	d.Set("list", StringValue("a"), StringValue("b"), StringValue("c"))

	buf := PackDict(nil, d)
	got, n, err := UnpackDict(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	name, ok := got.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "root", name)

	list, ok := got.Get("list")
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Str)
	assert.Equal(t, "b", list[1].Str)
	assert.Equal(t, "c", list[2].Str)

	nestedVals, ok := got.Get("nested")
	require.True(t, ok)
	require.Len(t, nestedVals, 1)
	require.True(t, nestedVals[0].IsDict)
	xv, ok := nestedVals[0].Dict.GetString("x")
	require.True(t, ok)
	assert.Equal(t, "1", xv)
}

func TestDictAcceptsAnyOrderOnDecode(t *testing.T) {
	// Hand-build a dict payload with keys NOT in ascending order; the
	// unpacker must still accept it (§3: "the unpacker must accept any
	// order").
	var buf []byte
	buf = PackString(buf, "zebra")
	buf = append(buf, tagString)
	buf = PackString(buf, "z")
	buf = append(buf, tagEnd)
	buf = PackString(buf, "apple")
	buf = append(buf, tagString)
	buf = PackString(buf, "a")
	buf = append(buf, tagEnd)
	buf = PackString(buf, "") // outer terminator

	d, n, err := UnpackDict(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	z, ok := d.GetString("zebra")
	require.True(t, ok)
	assert.Equal(t, "z", z)
	a, ok := d.GetString("apple")
	require.True(t, ok)
	assert.Equal(t, "a", a)
}

func TestDictEmpty(t *testing.T) {
	buf := PackDict(nil, NewDict())
	d, n, err := UnpackDict(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, 0, d.Len())
}
