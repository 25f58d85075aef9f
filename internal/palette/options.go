package palette

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Resample names accepted by Options.Resample.
const (
	ResampleNearest = "nearest"
	ResampleLinear  = "linear"
	ResampleLanczos = "lanczos"
)

var defaultOptions = Options{
	TargetSize:     100,
	Stride:         5,
	BucketWidth:    32,
	AlphaThreshold: 128,
	MinSaturation:  0.3,
	MinBrightness:  0.2,
	MaxBrightness:  0.9,
	Resample:       ResampleLinear,
}

// Options holds the tunable constants of the extraction pipeline.
//
// The zero value of any field means "use the default". Use Normalize to get
// a fully populated copy.
type Options struct {
	// TargetSize is the width and height of the downsampled buffer.
	TargetSize int `json:"target_size"`

	// Stride is the sampling step in both axes of the downsampled buffer.
	Stride int `json:"stride"`

	// BucketWidth is the width of a quantization bucket on the 0-255 scale.
	BucketWidth int `json:"bucket_width"`

	// AlphaThreshold skips pixels whose alpha is at or below it.
	AlphaThreshold int `json:"alpha_threshold"`

	// MinSaturation is exclusive: kept colors have saturation > MinSaturation.
	MinSaturation float64 `json:"min_saturation"`

	// MinBrightness and MaxBrightness are exclusive bounds on brightness.
	MinBrightness float64 `json:"min_brightness"`
	MaxBrightness float64 `json:"max_brightness"`

	// Resample selects the downsampling filter: nearest, linear or lanczos.
	Resample string `json:"resample"`
}

// DefaultOptions returns the standard pipeline constants.
func DefaultOptions() Options {
	return defaultOptions
}

// Normalize returns a copy with zero or out-of-range values replaced by
// defaults.
func (o Options) Normalize() Options {
	if o.TargetSize <= 0 {
		o.TargetSize = defaultOptions.TargetSize
	}
	if o.Stride <= 0 {
		o.Stride = defaultOptions.Stride
	}
	if o.BucketWidth <= 0 || o.BucketWidth > 256 {
		o.BucketWidth = defaultOptions.BucketWidth
	}
	if o.AlphaThreshold <= 0 || o.AlphaThreshold > 255 {
		o.AlphaThreshold = defaultOptions.AlphaThreshold
	}
	if o.MinSaturation <= 0 || o.MinSaturation >= 1 {
		o.MinSaturation = defaultOptions.MinSaturation
	}
	if o.MinBrightness <= 0 || o.MinBrightness >= 1 {
		o.MinBrightness = defaultOptions.MinBrightness
	}
	if o.MaxBrightness <= 0 || o.MaxBrightness >= 1 {
		o.MaxBrightness = defaultOptions.MaxBrightness
	}
	if o.MinBrightness >= o.MaxBrightness {
		o.MinBrightness = defaultOptions.MinBrightness
		o.MaxBrightness = defaultOptions.MaxBrightness
	}
	if _, err := resampleFilter(o.Resample); err != nil {
		o.Resample = defaultOptions.Resample
	}
	o.Resample = strings.ToLower(o.Resample)
	return o
}

// Fingerprint is a stable string form of the options, suitable as part of a
// cache key.
func (o Options) Fingerprint() string {
	n := o.Normalize()
	return fmt.Sprintf("ts:%d|st:%d|bw:%d|at:%d|sat:%0.4f|minb:%0.4f|maxb:%0.4f|rs:%s",
		n.TargetSize, n.Stride, n.BucketWidth, n.AlphaThreshold,
		n.MinSaturation, n.MinBrightness, n.MaxBrightness, n.Resample)
}

func resampleFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(name) {
	case ResampleNearest:
		return imaging.NearestNeighbor, nil
	case ResampleLinear:
		return imaging.Linear, nil
	case ResampleLanczos:
		return imaging.Lanczos, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter: %q", name)
	}
}
