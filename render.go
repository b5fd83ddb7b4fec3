package rgb565

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/rgb565/pixel"
	"github.com/bodgit/rgb565/raw"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	maxColors    = 256
	bannerHeight = 22
	bannerMargin = 6
)

// Options control how a decoded image is rendered as a PNG.
type Options struct {
	// Colors, if non-zero, reduces the image to a palette of at most this
	// many colors.
	Colors int
	// Label draws the image size and name in the top-left corner.
	Label bool
}

// Render reads the raw file and decodes it as a width by height image.
func Render(file string, width, height int) (*pixel.RGB, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return raw.Decode(f, width, height)
}

func label(m *pixel.RGB, text string) *pixel.RGB {
	dup := pixel.NewRGB(m.Rect)
	copy(dup.Pix, m.Pix)

	face := basicfont.Face7x13
	banner := image.Rect(0, 0, font.MeasureString(face, text).Ceil()+bannerMargin*2, bannerHeight).Add(m.Rect.Min).Intersect(m.Rect)
	draw.Draw(dup, banner, &image.Uniform{color.RGBA{0, 0, 0, 180}}, image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dup,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(m.Rect.Min.X+bannerMargin, m.Rect.Min.Y+16),
	}
	d.DrawString(text)

	return dup
}

func quantized(m image.Image, colors int) *image.Paletted {
	if colors > maxColors {
		colors = maxColors
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// WritePNG encodes m to w as a PNG. name is only used for the label.
func WritePNG(w io.Writer, m *pixel.RGB, name string, opts Options) error {
	var out image.Image = m
	if opts.Label {
		b := m.Bounds()
		out = label(m, fmt.Sprintf("%dx%d %s", b.Dx(), b.Dy(), filepath.Base(name)))
	}
	if opts.Colors > 0 {
		out = quantized(out, opts.Colors)
	}
	return png.Encode(w, out)
}

// WritePNGFile writes m to file as a PNG, replacing file only once the PNG
// has been written in full.
func WritePNGFile(file string, m *pixel.RGB, name string, opts Options) error {
	tmp := file + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := WritePNG(f, m, name, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, file)
}

// Convert decodes the raw file src and writes it to dst as a PNG. dst is
// left untouched if src cannot be decoded.
func Convert(src, dst string, width, height int, opts Options) error {
	m, err := Render(src, width, height)
	if err != nil {
		return err
	}
	return WritePNGFile(dst, m, src, opts)
}

// Import reads the GIF, JPEG, or PNG image in file and writes it as a raw
// file in dir, named after file with a WIDTHxHEIGHT extension. The path of
// the new file is returned.
func Import(file, dir string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}

	b := m.Bounds()
	out := filepath.Join(dir, SizedName(filepath.Base(file), b.Dx(), b.Dy()))

	if err := writeRawFile(out, m); err != nil {
		return "", err
	}

	return out, nil
}

// writeRawFile writes m to file as a raw image, replacing file only once the
// image has been written in full.
func writeRawFile(file string, m image.Image) error {
	tmp := file + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := raw.Encode(f, m); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, file)
}
