package palette

import "math"

// Swatch is a display-ready description of a Color.
type Swatch struct {
	Hex string   `json:"hex" yaml:"hex"`
	RGB [3]uint8 `json:"rgb" yaml:"rgb,flow"`
	HSB HSB      `json:"hsb" yaml:"hsb"`
}

// ReportStop is a gradient stop in a Report.
type ReportStop struct {
	Swatch  Swatch  `json:"swatch" yaml:"swatch"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// Report is the output form of a Palette used by the CLI and the MCP tools.
type Report struct {
	Dominant  Swatch       `json:"dominant" yaml:"dominant"`
	Secondary Swatch       `json:"secondary" yaml:"secondary"`
	Light     Swatch       `json:"light" yaml:"light"`
	Gradient  []ReportStop `json:"gradient" yaml:"gradient"`
	Fallback  bool         `json:"fallback" yaml:"fallback"`
}

// CandidateSwatch is a ranked candidate in an AnalysisReport.
type CandidateSwatch struct {
	Swatch `yaml:",inline"`
	Count  int `json:"count" yaml:"count"`
}

// AnalysisReport is the output form of an Analysis.
type AnalysisReport struct {
	Sampled    int               `json:"sampled" yaml:"sampled"`
	Counted    int               `json:"counted" yaml:"counted"`
	Buckets    int               `json:"buckets" yaml:"buckets"`
	Total      int               `json:"total_candidates" yaml:"total_candidates"`
	Candidates []CandidateSwatch `json:"candidates" yaml:"candidates"`
	Palette    Report            `json:"palette" yaml:"palette"`
}

// Swatch describes the color. HSB values are rounded to three decimals.
func (c Color) Swatch() Swatch {
	hsb := c.HSB()
	return Swatch{
		Hex: c.Hex(),
		RGB: [3]uint8{c.R, c.G, c.B},
		HSB: HSB{H: round3(hsb.H), S: round3(hsb.S), B: round3(hsb.B)},
	}
}

// Report converts the palette to its output form.
func (p Palette) Report() Report {
	r := Report{
		Dominant:  p.Dominant.Swatch(),
		Secondary: p.Secondary.Swatch(),
		Light:     p.Light.Swatch(),
		Gradient:  make([]ReportStop, 0, len(p.Gradient)),
		Fallback:  p.Fallback,
	}
	for _, stop := range p.Gradient {
		r.Gradient = append(r.Gradient, ReportStop{Swatch: stop.Color.Swatch(), Opacity: stop.Opacity})
	}
	return r
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Report converts the analysis to its output form, keeping at most limit
// candidates. A limit of zero or less keeps them all; Total always counts
// every candidate.
func (a Analysis) Report(limit int) AnalysisReport {
	cands := a.Candidates
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	r := AnalysisReport{
		Sampled:    a.Sampled,
		Counted:    a.Counted,
		Buckets:    a.Buckets,
		Total:      len(a.Candidates),
		Candidates: make([]CandidateSwatch, 0, len(cands)),
		Palette:    a.Palette.Report(),
	}
	for _, c := range cands {
		r.Candidates = append(r.Candidates, CandidateSwatch{Swatch: c.Color.Swatch(), Count: c.Count})
	}
	return r
}
