package palette

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// createSolidImage creates an in-memory image filled with one color
func createSolidImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createSplitImage fills columns [0, split) with left and the rest with right
func createSplitImage(width, height, split int, left, right color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < split {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

var (
	vibrantRed  = color.NRGBA{200, 60, 60, 255}
	vibrantBlue = color.NRGBA{60, 60, 200, 255}
	redBucket   = Color{R: 192, G: 32, B: 32}
	blueBucket  = Color{R: 32, G: 32, B: 192}
)

func TestExtract_SolidColor(t *testing.T) {
	p := Extract(NewPixelBuffer(createSolidImage(64, 48, vibrantRed)))

	if p.Fallback {
		t.Fatal("solid vibrant image should not produce the fallback palette")
	}
	if p.Dominant != redBucket {
		t.Errorf("Dominant: got %v, want %v", p.Dominant, redBucket)
	}
	wantSecondary := redBucket.WithBrightness(-0.2)
	if p.Secondary != wantSecondary {
		t.Errorf("Secondary: got %v, want %v", p.Secondary, wantSecondary)
	}

	gotB := p.Secondary.HSB().B
	wantB := redBucket.HSB().B - 0.2
	if math.Abs(gotB-wantB) > 1.0/255 {
		t.Errorf("Secondary brightness: got %.4f, want %.4f", gotB, wantB)
	}
}

func TestExtract_Grayscale(t *testing.T) {
	grays := []color.NRGBA{
		{128, 128, 128, 255},
		{150, 130, 130, 255},
		{20, 20, 20, 255},
		{250, 250, 250, 255},
	}
	for _, g := range grays {
		p := Extract(NewPixelBuffer(createSolidImage(30, 30, g)))
		if diff := cmp.Diff(Fallback(), p); diff != "" {
			t.Errorf("gray %v: palette mismatch (-want +got):\n%s", g, diff)
		}
	}
}

func TestExtract_Transparent(t *testing.T) {
	img := createSolidImage(40, 40, color.NRGBA{200, 60, 60, 0})
	p := Extract(NewPixelBuffer(img))
	if diff := cmp.Diff(Fallback(), p); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_TranslucentKeepsBucket(t *testing.T) {
	colors := []Color{
		{R: 192, G: 32, B: 32},
		{R: 192, G: 64, B: 32},
		{R: 200, G: 60, B: 60},
	}
	sizes := [][2]int{{1, 1}, {7, 3}, {100, 100}, {333, 517}}
	filters := []string{ResampleNearest, ResampleLinear, ResampleLanczos}

	for _, c := range colors {
		want := QuantizeColor(c, 32)
		for _, alpha := range []uint8{129, 130, 200, 255} {
			for _, size := range sizes {
				for _, filter := range filters {
					opts := DefaultOptions()
					opts.Resample = filter
					img := createSolidImage(size[0], size[1], color.NRGBA{c.R, c.G, c.B, alpha})
					p := NewExtractor(opts).ExtractImage(img)
					if p.Fallback {
						t.Errorf("%v alpha %d %v %s: got the fallback palette", c, alpha, size, filter)
						continue
					}
					if p.Dominant != want {
						t.Errorf("%v alpha %d %v %s: Dominant got %v, want %v", c, alpha, size, filter, p.Dominant, want)
					}
				}
			}
		}
	}
}

func TestExtract_AlphaThresholdBoundary(t *testing.T) {
	tests := []struct {
		alpha    uint8
		fallback bool
	}{
		{0, true},
		{127, true},
		{128, true},
		{129, false},
		{255, false},
	}
	for _, tt := range tests {
		p := Extract(NewPixelBuffer(createSolidImage(40, 40, color.NRGBA{192, 32, 32, tt.alpha})))
		if p.Fallback != tt.fallback {
			t.Errorf("alpha %d: Fallback got %v, want %v", tt.alpha, p.Fallback, tt.fallback)
		}
	}
}

func TestDownsample_SameSizeIsExact(t *testing.T) {
	src := NewPixelBuffer(createSplitImage(100, 100, 30,
		color.NRGBA{192, 32, 32, 200},
		color.NRGBA{10, 200, 90, 140}))

	for _, filter := range []string{ResampleNearest, ResampleLinear, ResampleLanczos} {
		got, err := Downsample(src, 100, filter)
		if err != nil {
			t.Fatalf("%s: Downsample failed: %v", filter, err)
		}
		if diff := cmp.Diff(src.Pix, got.Pix); diff != "" {
			t.Errorf("%s: pixels changed (-src +got):\n%s", filter, diff)
		}
	}
}

func TestExtract_NilAndEmpty(t *testing.T) {
	e := NewExtractor(DefaultOptions())

	if diff := cmp.Diff(Fallback(), e.ExtractImage(nil)); diff != "" {
		t.Errorf("nil image (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Fallback(), e.Extract(nil)); diff != "" {
		t.Errorf("nil buffer (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Fallback(), e.Extract(&PixelBuffer{})); diff != "" {
		t.Errorf("empty buffer (-want +got):\n%s", diff)
	}
}

func TestExtract_SinglePixel(t *testing.T) {
	p := Extract(NewPixelBuffer(createSolidImage(1, 1, vibrantRed)))
	if p.Dominant != redBucket {
		t.Errorf("Dominant: got %v, want %v", p.Dominant, redBucket)
	}
}

func TestExtract_DominantAndSecondary(t *testing.T) {
	img := createSplitImage(100, 100, 70, vibrantRed, vibrantBlue)
	p := Extract(NewPixelBuffer(img))

	if p.Dominant != redBucket {
		t.Errorf("Dominant: got %v, want %v", p.Dominant, redBucket)
	}
	if p.Secondary != blueBucket {
		t.Errorf("Secondary: got %v, want %v", p.Secondary, blueBucket)
	}
}

func TestExtract_TieBreak(t *testing.T) {
	// Both halves cover 10 of the 20 sampled columns.
	img := createSplitImage(100, 100, 50, vibrantRed, vibrantBlue)
	p := Extract(NewPixelBuffer(img))

	if p.Dominant != blueBucket {
		t.Errorf("Dominant: got %v, want %v (lexicographically smaller)", p.Dominant, blueBucket)
	}
	if p.Secondary != redBucket {
		t.Errorf("Secondary: got %v, want %v", p.Secondary, redBucket)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 173, 251))
	for y := 0; y < 251; y++ {
		for x := 0; x < 173; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 7), uint8(y * 3), uint8((x + y) * 5), 255})
		}
	}

	first := Extract(NewPixelBuffer(img))
	for i := 0; i < 5; i++ {
		again := Extract(NewPixelBuffer(img))
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestExtract_DoesNotMutateInput(t *testing.T) {
	buf := NewPixelBuffer(createSplitImage(20, 20, 10, vibrantRed, vibrantBlue))
	before := append([]uint8(nil), buf.Pix...)

	_ = Extract(buf)

	if diff := cmp.Diff(before, buf.Pix); diff != "" {
		t.Errorf("input buffer was modified (-before +after):\n%s", diff)
	}
}

func TestSelectPalette_LightDerivation(t *testing.T) {
	colors := []Color{
		{R: 192, G: 32, B: 32},
		{R: 32, G: 160, B: 96},
		{R: 64, G: 64, B: 224},
		{R: 96, G: 32, B: 128},
		{R: 224, G: 160, B: 32},
	}

	for _, c := range colors {
		t.Run(c.Hex(), func(t *testing.T) {
			p := SelectPalette([]Candidate{{Color: c, Count: 1}})
			src := c.HSB()
			got := p.Light.HSB()

			wantB := math.Min(1.0, src.B+0.4)
			if math.Abs(got.B-wantB) > 1.0/255 {
				t.Errorf("brightness: got %.4f, want %.4f", got.B, wantB)
			}
			if math.Abs(got.S-src.S) > 0.02 {
				t.Errorf("saturation: got %.4f, want %.4f", got.S, src.S)
			}
			if hueDistance(got.H, src.H) > 2 {
				t.Errorf("hue: got %.2f, want %.2f", got.H, src.H)
			}
		})
	}
}

func TestSelectPalette_Gradient(t *testing.T) {
	p := SelectPalette([]Candidate{{Color: redBucket, Count: 3}})

	if len(p.Gradient) != 3 {
		t.Fatalf("Gradient: got %d stops, want 3", len(p.Gradient))
	}
	wantOpacity := []float64{0.3, 0.1, 0}
	for i, stop := range p.Gradient {
		if stop.Opacity != wantOpacity[i] {
			t.Errorf("stop %d opacity: got %v, want %v", i, stop.Opacity, wantOpacity[i])
		}
		if stop.Color != p.Light {
			t.Errorf("stop %d color: got %v, want light %v", i, stop.Color, p.Light)
		}
	}
}

func TestFallback(t *testing.T) {
	p := Fallback()

	if p.Dominant != FallbackBlue {
		t.Errorf("Dominant: got %v, want %v", p.Dominant, FallbackBlue)
	}
	if p.Secondary != FallbackGray {
		t.Errorf("Secondary: got %v, want %v", p.Secondary, FallbackGray)
	}
	if !p.Fallback {
		t.Error("Fallback flag should be set")
	}
	if len(p.Gradient) != 3 {
		t.Fatalf("Gradient: got %d stops, want 3", len(p.Gradient))
	}
	for i, stop := range p.Gradient {
		if stop.Opacity != 0 {
			t.Errorf("stop %d should be transparent, got opacity %v", i, stop.Opacity)
		}
	}

	// Each call returns a fresh value.
	p.Gradient[0].Opacity = 1
	if Fallback().Gradient[0].Opacity != 0 {
		t.Error("Fallback() shares gradient storage between calls")
	}
}

func TestAnalyze(t *testing.T) {
	e := NewExtractor(DefaultOptions())
	a := e.Analyze(NewPixelBuffer(createSplitImage(100, 100, 70, vibrantRed, vibrantBlue)))

	if a.Sampled != 400 {
		t.Errorf("Sampled: got %d, want 400", a.Sampled)
	}
	if a.Counted != 400 {
		t.Errorf("Counted: got %d, want 400", a.Counted)
	}
	if a.Buckets != 2 {
		t.Errorf("Buckets: got %d, want 2", a.Buckets)
	}
	want := []Candidate{
		{Color: redBucket, Count: 280},
		{Color: blueBucket, Count: 120},
	}
	if diff := cmp.Diff(want, a.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
