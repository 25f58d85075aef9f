package source

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region names accepted by CropRegion.
var RegionNames = []string{
	"full",
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half",
	"center",
}

// ValidRegion reports whether name is accepted by CropRegion.
func ValidRegion(name string) bool {
	if name == "" {
		return true
	}
	for _, r := range RegionNames {
		if r == name {
			return true
		}
	}
	return false
}

// CropRegion extracts a named region of a cover. An empty name or "full"
// returns img unchanged.
func CropRegion(img image.Image, region string) (image.Image, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "", "full":
		return img, nil
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the cover
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	rect := image.Rect(x1, y1, x2, y2).Add(bounds.Min)
	if rect.Empty() {
		// Too small to split; the palette pipeline treats this as degenerate.
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	}
	return imaging.Crop(img, rect), nil
}
