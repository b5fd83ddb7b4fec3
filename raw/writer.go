package raw

import (
	"image"
	"io"

	"github.com/bodgit/rgb565/pixel"
)

// Encode writes the Image m to w as a headerless raw RGB565 image. Each
// channel keeps only its top 5 or 6 bits and alpha is discarded.
func Encode(w io.Writer, m image.Image) error {
	rgb := pixel.FromImage(m)
	b := rgb.Bounds()

	words, err := pixel.Encode(rgb.Pix, b.Dx(), b.Dy())
	if err != nil {
		return err
	}

	_, err = w.Write(Bytes(words))
	return err
}
