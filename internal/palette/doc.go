// Package palette derives a small theming palette from a cover image.
//
// The package is a pure pipeline with no I/O and no goroutines. A decoded
// image is wrapped in a PixelBuffer and handed to an Extractor, which runs
// the following stages in order:
//
//  1. Downsample: resize to a fixed square resolution, ignoring aspect ratio.
//  2. Histogram: strided sampling, alpha rejection, per-channel quantization.
//  3. Vibrancy filter: keep colors with enough saturation and mid brightness.
//  4. Selection: order by count (ties by ascending R, G, B) and pick the
//     dominant, secondary and light colors.
//  5. Gradient: three (color, opacity) stops built from the light color.
//
// # Determinism
//
// The same pixels always produce the same Palette. Quantization maps each
// channel into fixed equal-width buckets, and candidate ordering never depends
// on map iteration order.
//
// # Failure Policy
//
// Extraction never fails. An empty buffer, an empty histogram or an empty
// candidate list all produce the value returned by Fallback. Callers that need
// to know whether the fallback was used can check Palette.Fallback.
//
// # Color Representation
//
// Colors are 8-bit RGB triples. Hue, saturation and brightness (HSB) are
// computed on demand with go-colorful and never stored:
//   - Hue: 0-360 degrees
//   - Saturation: 0-1
//   - Brightness: 0-1 (the HSV "value" component)
package palette
