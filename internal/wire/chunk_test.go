package wire

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessageChunksLargePayload(t *testing.T) {
	const payloadLen = 2*0xFFFE + 1000
	payload := make([]byte, payloadLen)
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, payload))

	b := buf.Bytes()
	// chunk 1: 0xFFFE length
	assert.Equal(t, []byte{0xFF, 0xFE}, b[0:2])
	b = b[2+0xFFFE:]
	// chunk 2: 0xFFFE length
	assert.Equal(t, []byte{0xFF, 0xFE}, b[0:2])
	b = b[2+0xFFFE:]
	remainder := payloadLen - 2*0xFFFE
	wantLen := []byte{byte(remainder >> 8), byte(remainder)}
	assert.Equal(t, wantLen, b[0:2])
	b = b[2+remainder:]
	// terminator
	assert.Equal(t, []byte{0x00, 0x00}, b)
}

func TestMessageRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("short"),
		bytes.Repeat([]byte{0xAB}, 100000),
	}
	for _, p := range payloads {
		var buf bytes.Buffer
		require.NoError(t, WriteMessage(&buf, p))
		got, err := ReadMessage(bufio.NewReader(&buf))
		require.NoError(t, err)
		if len(p) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, p, got)
		}
	}
}

func TestReadMessageEOF(t *testing.T) {
	_, err := ReadMessage(bufio.NewReader(bytes.NewReader(nil)))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMessageRejectsReservedLength(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	_, err := ReadMessage(bufio.NewReader(bytes.NewReader(buf)))
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindBadChunk, pe.Kind)
}

func TestReadMessageShortReadErrors(t *testing.T) {
	// Declares a 10-byte chunk but only provides 3.
	buf := []byte{0x00, 0x0A, 0x01, 0x02, 0x03}
	_, err := ReadMessage(bufio.NewReader(bytes.NewReader(buf)))
	require.Error(t, err)
}
