package palette

// Brightness shifts applied to the dominant color.
const (
	secondaryBrightnessDelta = -0.2
	lightBrightnessDelta     = 0.4
)

// GradientStop is one color stop of a background gradient.
type GradientStop struct {
	Color   Color   `json:"color"`
	Opacity float64 `json:"opacity"` // 0 = transparent, 1 = opaque
}

// Palette is the result of one extraction. It is always fully populated.
type Palette struct {
	Dominant  Color          `json:"dominant"`
	Secondary Color          `json:"secondary"`
	Light     Color          `json:"light"`
	Gradient  []GradientStop `json:"gradient"`

	// Fallback is true when no vibrant color was found and the fixed
	// fallback palette was returned.
	Fallback bool `json:"fallback"`
}

// Fallback returns the fixed palette used whenever extraction has nothing to
// work with: accent blue, neutral gray, and a fully transparent gradient.
func Fallback() Palette {
	light := FallbackBlue.WithBrightness(lightBrightnessDelta)
	return Palette{
		Dominant:  FallbackBlue,
		Secondary: FallbackGray,
		Light:     light,
		Gradient: []GradientStop{
			{Color: light, Opacity: 0},
			{Color: light, Opacity: 0},
			{Color: light, Opacity: 0},
		},
		Fallback: true,
	}
}

// SelectPalette builds a palette from candidates that are already in
// selection order. An empty list yields Fallback().
func SelectPalette(cands []Candidate) Palette {
	if len(cands) == 0 {
		return Fallback()
	}

	dominant := cands[0].Color
	secondary := dominant.WithBrightness(secondaryBrightnessDelta)
	if len(cands) > 1 {
		secondary = cands[1].Color
	}
	light := dominant.WithBrightness(lightBrightnessDelta)

	return Palette{
		Dominant:  dominant,
		Secondary: secondary,
		Light:     light,
		Gradient:  ComposeGradient(light),
	}
}

// ComposeGradient returns the background stops for a light color:
// 30% opacity, 10% opacity, then transparent.
func ComposeGradient(light Color) []GradientStop {
	return []GradientStop{
		{Color: light, Opacity: 0.3},
		{Color: light, Opacity: 0.1},
		{Color: light, Opacity: 0},
	}
}
