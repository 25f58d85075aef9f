package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "github.com/gen2brain/avif" // Register AVIF format decoder
	_ "github.com/xfmoulet/qoi"   // Register QOI format decoder
	_ "golang.org/x/image/bmp"    // Register BMP format decoder
	_ "golang.org/x/image/webp"   // Register WebP format decoder
)

// Sentinel errors for cover resolution.
var (
	// ErrNoImage is returned when a reference names no image.
	ErrNoImage = errors.New("no image")
	// ErrFetch is returned when a remote image cannot be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrTooLarge is returned when an image exceeds the size limit.
	ErrTooLarge = errors.New("image too large")
	// ErrDecode is returned when bytes are not a supported image.
	ErrDecode = errors.New("decode failed")
	// ErrUnknownRegion is returned for an unrecognized region name.
	ErrUnknownRegion = errors.New("unknown region")
)

// Decode reads an image from r, applying EXIF orientation for JPEG covers.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// DecodeBytes is Decode for an in-memory image. Empty input returns
// ErrNoImage.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return Decode(bytes.NewReader(data))
}

// DetectFormat returns the registered format name for data, or "unknown".
func DetectFormat(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "unknown"
	}
	return format
}
