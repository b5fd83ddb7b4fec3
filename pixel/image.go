package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	// ErrLength is returned when a buffer does not hold exactly width by
	// height pixels.
	ErrLength = errors.New("pixel: length mismatch")
	// ErrDimensions is returned when width or height is not positive or the
	// image would be too large to address.
	ErrDimensions = errors.New("pixel: invalid dimensions")
)

const bytesPerPixel = 3

// RGB is an in-memory image of RGB888 pixels stored in row-major order,
// three bytes per pixel.
type RGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a new RGB image with the given bounds.
func NewRGB(r image.Rectangle) *RGB {
	return &RGB{
		Pix:    make([]uint8, bytesPerPixel*r.Dx()*r.Dy()),
		Stride: bytesPerPixel * r.Dx(),
		Rect:   r,
	}
}

// ColorModel implements the image.Image interface.
func (m *RGB) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the image.Image interface.
func (m *RGB) Bounds() image.Rectangle {
	return m.Rect
}

// Opaque reports whether the image is fully opaque, which it always is.
func (m *RGB) Opaque() bool {
	return true
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (m *RGB) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*bytesPerPixel
}

// At implements the image.Image interface.
func (m *RGB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Rect)) {
		return color.RGBA{}
	}
	i := m.PixOffset(x, y)
	s := m.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// Set implements the draw.Image interface. Alpha is discarded.
func (m *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	i := m.PixOffset(x, y)
	c1 := color.NRGBAModel.Convert(c).(color.NRGBA)
	s := m.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0] = c1.R
	s[1] = c1.G
	s[2] = c1.B
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/bytesPerPixel/height {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return nil
}

// CheckSize returns an error unless n pixels make up exactly a width by
// height image.
func CheckSize(n, width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	if n != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d image", ErrLength, n, width, height)
	}
	return nil
}

// Decode expands the row-major RGB565 words into a new width by height RGB
// image. It fails without producing an image when len(words) is not
// width*height.
func Decode(words []uint16, width, height int) (*RGB, error) {
	if err := CheckSize(len(words), width, height); err != nil {
		return nil, err
	}

	m := NewRGB(image.Rect(0, 0, width, height))
	for i, w := range words {
		s := m.Pix[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
		s[0], s[1], s[2] = Pixel(w).RGB()
	}
	return m, nil
}

// Encode packs pix, a row-major sequence of RGB888 triples, into one RGB565
// word per triple. len(pix) must be exactly width*height*3.
func Encode(pix []uint8, width, height int) ([]uint16, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height*bytesPerPixel {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d image", ErrLength, len(pix), width, height)
	}

	words := make([]uint16, width*height)
	for i := range words {
		s := pix[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
		words[i] = uint16(FromRGB(s[0], s[1], s[2]))
	}
	return words, nil
}

// FromImage returns m as an RGB image with its top-left corner at (0, 0).
// An *RGB already positioned there is returned as is.
func FromImage(m image.Image) *RGB {
	b := m.Bounds()
	if rgb, ok := m.(*RGB); ok && b.Min == (image.Point{}) && rgb.Stride == bytesPerPixel*b.Dx() {
		return rgb
	}

	dst := NewRGB(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, m.At(x, y))
		}
	}
	return dst
}
