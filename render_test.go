package rgb565

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/bits"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/rgb565/pixel"
	"github.com/bodgit/rgb565/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRaw(t *testing.T, file string, words []uint16) {
	t.Helper()
	require.NoError(t, os.WriteFile(file, raw.Bytes(words), 0644))
}

func gradient(width, height int) []uint16 {
	words := make([]uint16, width*height)
	for i := range words {
		words[i] = uint16(i * 97)
	}
	return words
}

func TestRender(t *testing.T) {
	file := filepath.Join(t.TempDir(), "image.2x1")
	writeRaw(t, file, []uint16{0xf800, 0x001f})

	m, err := Render(file, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{248, 0, 0, 0, 0, 248}, m.Pix)

	_, err = Render(file, 2, 2)
	assert.ErrorIs(t, err, pixel.ErrLength)

	_, err = Render(file, 1<<(bits.UintSize/2), 1<<(bits.UintSize/2))
	assert.ErrorIs(t, err, pixel.ErrDimensions)

	_, err = Render(filepath.Join(t.TempDir(), "missing"), 2, 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWritePNG(t *testing.T) {
	m, err := pixel.Decode(gradient(64, 40), 64, 40)
	require.NoError(t, err)

	tables := []struct {
		name string
		opts Options
	}{
		{"plain", Options{}},
		{"colors", Options{Colors: 16}},
		{"label", Options{Label: true}},
		{"both", Options{Colors: 1000, Label: true}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, WritePNG(b, m, "image.64x40", table.opts))

			out, err := png.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 64, 40), out.Bounds())

			if table.opts.Colors > 0 {
				pm, ok := out.(*image.Paletted)
				require.True(t, ok)
				assert.LessOrEqual(t, len(pm.Palette), table.opts.Colors)
			}
			if !table.opts.Label && table.opts.Colors == 0 {
				assert.Equal(t, m.At(10, 10), color.RGBAModel.Convert(out.At(10, 10)))
			}
		})
	}

	// The label is drawn on a copy
	before := append([]uint8(nil), m.Pix...)
	require.NoError(t, WritePNG(new(bytes.Buffer), m, "image.64x40", Options{Label: true}))
	assert.Equal(t, before, m.Pix)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "image.4x4")
	dst := filepath.Join(dir, "image.png")
	writeRaw(t, src, gradient(4, 4))

	require.NoError(t, Convert(src, dst, 4, 4, Options{}))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()

	c, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width)
	assert.Equal(t, 4, c.Height)

	// A failed conversion leaves the previous output alone
	require.NoError(t, os.WriteFile(src, []byte{0, 0}, 0644))
	before, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.ErrorIs(t, Convert(src, dst, 4, 4, Options{}), pixel.ErrLength)
	after, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	m.Set(0, 0, color.NRGBA{0xff, 0, 0, 0xff})
	m.Set(1, 0, color.NRGBA{0, 0xff, 0, 0xff})
	m.Set(2, 0, color.NRGBA{0, 0, 0xff, 0xff})
	m.Set(0, 1, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	src := filepath.Join(dir, "fixture.png")
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	out, err := Import(src, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fixture.3x2"), out)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0xf800, 0x07e0, 0x001f, 0xffff, 0x0000, 0x0000}, raw.Words(b))

	w, h := SizeFromName(out)
	assert.Equal(t, "3", w)
	assert.Equal(t, "2", h)
}

func TestWriteRawFileFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.0x0")

	// An empty image cannot be encoded, nothing may be left behind
	err := writeRawFile(out, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, pixel.ErrDimensions)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// An existing file is left alone
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))
	assert.Error(t, writeRawFile(out, image.NewRGBA(image.Rect(0, 0, 0, 0))))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("previous"), b)
	assert.NoFileExists(t, out+".tmp")
}
