package palette

import "image"

// Extractor runs the extraction pipeline with a fixed set of options.
//
// An Extractor is a plain value with no mutable state; it is safe to copy and
// to use from multiple goroutines.
type Extractor struct {
	opts Options
}

// Analysis is a Palette together with the intermediate results that
// produced it.
type Analysis struct {
	Palette Palette `json:"palette"`

	// Sampled is the number of pixel positions visited by the histogram.
	Sampled int `json:"sampled"`

	// Counted is the number of sampled pixels that passed the alpha check.
	Counted int `json:"counted"`

	// Buckets is the number of distinct quantized colors.
	Buckets int `json:"buckets"`

	// Candidates are the vibrant colors in selection order.
	Candidates []Candidate `json:"candidates"`
}

// NewExtractor returns an Extractor using normalized opts.
func NewExtractor(opts Options) Extractor {
	return Extractor{opts: opts.Normalize()}
}

// Options returns the normalized options in use.
func (e Extractor) Options() Options {
	return e.opts
}

// Extract returns the palette for buf. It never fails; degenerate input
// yields Fallback().
func (e Extractor) Extract(buf *PixelBuffer) Palette {
	return e.Analyze(buf).Palette
}

// ExtractImage is Extract for an image.Image. A nil image yields Fallback().
func (e Extractor) ExtractImage(img image.Image) Palette {
	if img == nil {
		return Fallback()
	}
	return e.Extract(NewPixelBuffer(img))
}

// Analyze runs the full pipeline and reports its intermediate results.
func (e Extractor) Analyze(buf *PixelBuffer) Analysis {
	opts := e.opts
	if opts.TargetSize == 0 {
		opts = opts.Normalize()
	}

	small, err := Downsample(buf, opts.TargetSize, opts.Resample)
	if err != nil {
		return Analysis{Palette: Fallback(), Candidates: []Candidate{}}
	}

	hist, sampled := BuildHistogram(small, opts.Stride, opts.BucketWidth, opts.AlphaThreshold)
	cands := FilterVibrant(hist, Vibrancy{
		MinSaturation: opts.MinSaturation,
		MinBrightness: opts.MinBrightness,
		MaxBrightness: opts.MaxBrightness,
	})

	return Analysis{
		Palette:    SelectPalette(cands),
		Sampled:    sampled,
		Counted:    hist.Total(),
		Buckets:    len(hist),
		Candidates: cands,
	}
}

// Extract runs the pipeline with DefaultOptions.
func Extract(buf *PixelBuffer) Palette {
	return NewExtractor(DefaultOptions()).Extract(buf)
}
