package raw

import (
	"image"
	"io"

	"github.com/bodgit/rgb565/pixel"
)

// Decode reads a width by height raw image from r. All of r is consumed and
// its length, after dropping any odd trailing byte, must match the
// dimensions exactly. Nothing is returned on a mismatch.
func Decode(r io.Reader, width, height int) (*pixel.RGB, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return pixel.Decode(Words(b), width, height)
}

// DecodeConfig returns the color model and dimensions of a raw image of size
// bytes without reading it, or an error if size does not fit a width by
// height image.
func DecodeConfig(size int64, width, height int) (image.Config, error) {
	if err := pixel.CheckSize(int(size/int64(wordSize)), width, height); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: pixel.Model,
		Width:      width,
		Height:     height,
	}, nil
}
