/*
Package pixel implements conversion between packed 16-bit RGB565 pixels and
8-bit per channel RGB888 pixels.

Each RGB565 pixel is stored as a 16-bit value laid out as RRRRRGGGGGGBBBBB.
Expanding a pixel to RGB888 places the 5 or 6 channel bits in the top bits of
each byte and leaves the low bits zero, so red and blue expand to multiples of
8 and green to multiples of 4. Packing an RGB888 pixel keeps only those top
bits and discards the rest.
*/
package pixel

import "image/color"

const (
	redMask   = 0xf800
	greenMask = 0x07e0
	blueMask  = 0x001f
)

// Pixel is a 16-bit RGB565 pixel. Every value is a valid pixel.
type Pixel uint16

// FromRGB packs the top 5, 6, and 5 bits of r, g, and b into a Pixel.
func FromRGB(r, g, b uint8) Pixel {
	return Pixel(uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b>>3))
}

// Red returns the red channel in the top 5 bits of a byte.
func (p Pixel) Red() uint8 {
	return uint8((p & redMask) >> 8)
}

// Green returns the green channel in the top 6 bits of a byte.
func (p Pixel) Green() uint8 {
	return uint8((p & greenMask) >> 3)
}

// Blue returns the blue channel in the top 5 bits of a byte.
func (p Pixel) Blue() uint8 {
	return uint8((p & blueMask) << 3)
}

// RGB returns all three expanded channels.
func (p Pixel) RGB() (r, g, b uint8) {
	return p.Red(), p.Green(), p.Blue()
}

// RGBA implements the color.Color interface. The pixel is always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.Red())
	r |= r << 8
	g = uint32(p.Green())
	g |= g << 8
	b = uint32(p.Blue())
	b |= b << 8
	a = 0xffff
	return
}

func model(c color.Color) color.Color {
	if _, ok := c.(Pixel); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts any color.Color to a Pixel, ignoring alpha.
var Model = color.ModelFunc(model)
