package palette

import "sort"

// Candidate is a quantized color and its occurrence count.
type Candidate struct {
	Color Color `json:"color"`
	Count int   `json:"count"`
}

// Vibrancy bounds a color must satisfy to be a candidate. All bounds are
// exclusive.
type Vibrancy struct {
	MinSaturation float64
	MinBrightness float64
	MaxBrightness float64
}

// Vibrant reports whether c is saturated enough and neither too dark nor too
// light.
func (v Vibrancy) Vibrant(c Color) bool {
	hsb := c.HSB()
	return hsb.S > v.MinSaturation && hsb.B > v.MinBrightness && hsb.B < v.MaxBrightness
}

// FilterVibrant returns the vibrant entries of hist in selection order
// (see SortCandidates). Counts are copied unchanged.
func FilterVibrant(hist Histogram, v Vibrancy) []Candidate {
	out := make([]Candidate, 0, len(hist))
	for c, n := range hist {
		if v.Vibrant(c) {
			out = append(out, Candidate{Color: c, Count: n})
		}
	}
	SortCandidates(out)
	return out
}

// SortCandidates orders candidates by descending count. Equal counts are
// ordered by ascending (R, G, B).
func SortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Count != cands[j].Count {
			return cands[i].Count > cands[j].Count
		}
		return cands[i].Color.Less(cands[j].Color)
	})
}
