package palette

// Histogram maps a quantized color to the number of sampled pixels that fell
// into its bucket. Never iterate it directly for selection; use Candidates
// or FilterVibrant, which return an explicit order.
type Histogram map[Color]int

// Quantize maps a channel value to the lower bound of its bucket:
//
//	quantized = floor(v / width) * width
//
// For width 32 the buckets are 0, 32, 64, ... 224.
func Quantize(v uint8, width int) uint8 {
	if width <= 1 {
		return v
	}
	return uint8(int(v) / width * width)
}

// QuantizeColor quantizes each channel of c independently.
func QuantizeColor(c Color, width int) Color {
	return Color{
		R: Quantize(c.R, width),
		G: Quantize(c.G, width),
		B: Quantize(c.B, width),
	}
}

// BuildHistogram samples buf every stride pixels in both axes, starting at
// the origin, and counts quantized colors.
//
// Pixels with alpha at or below alphaThreshold are skipped. The origin pixel is
// always visited, so a buffer smaller than the stride still contributes one
// sample. Returns the histogram and the number of pixels visited.
func BuildHistogram(buf *PixelBuffer, stride, bucketWidth, alphaThreshold int) (Histogram, int) {
	hist := make(Histogram)
	if buf.Empty() {
		return hist, 0
	}
	if stride <= 0 {
		stride = 1
	}

	visited := 0
	for y := 0; y < buf.Height; y += stride {
		for x := 0; x < buf.Width; x += stride {
			visited++
			r, g, b, a := buf.At(x, y)
			if int(a) <= alphaThreshold {
				continue
			}
			hist[QuantizeColor(Color{R: r, G: g, B: b}, bucketWidth)]++
		}
	}
	return hist, visited
}

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Candidates returns every histogram entry in selection order.
func (h Histogram) Candidates() []Candidate {
	out := make([]Candidate, 0, len(h))
	for c, n := range h {
		out = append(out, Candidate{Color: c, Count: n})
	}
	SortCandidates(out)
	return out
}
