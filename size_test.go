package rgb565

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tables := []struct {
		name          string
		width, height string
		w, h          int
		err           error
	}{
		{"valid", "64", "40", 64, 40, nil},
		{"spaces", " 320 ", "240\n", 320, 240, nil},
		{"missing width", "", "40", 0, 0, ErrSize},
		{"missing height", "64", "", 0, 0, ErrSize},
		{"non-numeric", "abc", "40", 0, 0, ErrSize},
		{"zero", "0", "40", 0, 0, ErrSize},
		{"negative", "64", "-1", 0, 0, ErrSize},
		{"fraction", "6.4", "40", 0, 0, ErrSize},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			w, h, err := ParseSize(table.width, table.height)
			if table.err != nil {
				assert.ErrorIs(t, err, table.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.w, w)
			assert.Equal(t, table.h, h)
		})
	}
}

func TestSizeFromName(t *testing.T) {
	tables := []struct {
		name          string
		width, height string
	}{
		{"image.64x64", "64", "64"},
		{"/tmp/dump.320x240", "320", "240"},
		{"rust-pride.64x", "64", ""},
		{"frame.x48", "", "48"},
		{"image.raw", "", ""},
		{"image", "", ""},
		{"archive.tar.xz", "", ""},
		{"/some.64x64/image.bin", "", ""},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			w, h := SizeFromName(table.name)
			assert.Equal(t, table.width, w)
			assert.Equal(t, table.height, h)
		})
	}
}

func TestSizedName(t *testing.T) {
	assert.Equal(t, "rust-pride.64x64", SizedName("rust-pride.bmp", 64, 64))
	assert.Equal(t, "frame.320x240", SizedName("frame", 320, 240))
}
