package raw

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	b := make([]byte, 6)
	binary.NativeEndian.PutUint16(b[0:], 0xf800)
	binary.NativeEndian.PutUint16(b[2:], 0x07e0)
	binary.NativeEndian.PutUint16(b[4:], 0x001f)

	assert.Equal(t, []uint16{0xf800, 0x07e0, 0x001f}, Words(b))
}

func TestWordsOddLength(t *testing.T) {
	tables := []struct {
		bytes, words int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{7, 3},
		{129, 64},
	}

	for _, table := range tables {
		assert.Len(t, Words(make([]byte, table.bytes)), table.words)
	}
}

func TestWordsShareMemory(t *testing.T) {
	b := make([]byte, 4)
	w := Words(b)

	binary.NativeEndian.PutUint16(b[2:], 0xbeef)
	assert.Equal(t, uint16(0xbeef), w[1])
}

func TestWordsUnaligned(t *testing.T) {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint16(b[1:], 0x1234)
	binary.NativeEndian.PutUint16(b[3:], 0x5678)

	// Whether or not the view aliases, the values are the same
	assert.Equal(t, []uint16{0x1234, 0x5678, 0x0000}, Words(b[1:]))
}

func TestBytes(t *testing.T) {
	w := []uint16{0xf800, 0x07e0}
	b := Bytes(w)

	assert.Len(t, b, 4)
	assert.Equal(t, uint16(0xf800), binary.NativeEndian.Uint16(b[0:]))
	assert.Equal(t, uint16(0x07e0), binary.NativeEndian.Uint16(b[2:]))

	w[0] = 0x001f
	assert.Equal(t, uint16(0x001f), binary.NativeEndian.Uint16(b[0:]))

	assert.Empty(t, Bytes(nil))
}

func TestBytesWords(t *testing.T) {
	w := []uint16{0x0000, 0xffff, 0x1234, 0xabcd}
	assert.Equal(t, w, Words(Bytes(w)))
}
