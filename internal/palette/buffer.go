package palette

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when a pixel buffer has no pixels.
var ErrEmptyImage = errors.New("empty image")

// PixelBuffer is a row-major RGBA8 pixel buffer with non-premultiplied alpha.
//
// Pix holds Width*Height*4 bytes in R, G, B, A order. The pipeline never
// writes to a buffer it was given; resizing produces a new one.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer copies img into a new PixelBuffer. A nil image yields an
// empty buffer.
func NewPixelBuffer(img image.Image) *PixelBuffer {
	if img == nil {
		return &PixelBuffer{}
	}
	// Clone always returns a tightly packed NRGBA rooted at (0,0).
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return &PixelBuffer{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    nrgba.Pix,
	}
}

// Empty reports whether the buffer holds no pixels.
func (b *PixelBuffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) < b.Width*b.Height*4
}

// At returns the components of the pixel at (x, y).
func (b *PixelBuffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Image returns an image.NRGBA view sharing the buffer's pixels.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Downsample resizes src to size x size pixels, ignoring aspect ratio.
//
// Resampling works on non-premultiplied pixels weighted by alpha, so a
// translucent pixel keeps its color. The result is always a new buffer.
// Returns ErrEmptyImage if src has no pixels.
func Downsample(src *PixelBuffer, size int, resample string) (*PixelBuffer, error) {
	if src.Empty() {
		return nil, ErrEmptyImage
	}
	if size <= 0 {
		size = defaultOptions.TargetSize
	}
	filter, err := resampleFilter(resample)
	if err != nil {
		filter = imaging.Linear
	}
	resized := imaging.Resize(src.Image(), size, size, filter)
	return &PixelBuffer{
		Width:  resized.Bounds().Dx(),
		Height: resized.Bounds().Dy(),
		Pix:    resized.Pix,
	}, nil
}
