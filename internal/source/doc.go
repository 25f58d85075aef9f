// Package source turns cover references into pixel buffers for the palette
// pipeline.
//
// A Reference names a cover by URL or by local path, optionally restricted to
// a named region of the image. The Resolver fetches or loads the bytes,
// decodes them, applies EXIF orientation, crops the region, and returns a
// *palette.PixelBuffer.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP, WebP, QOI and AVIF. Decoders are registered with the
// standard image package by blank imports in decode.go.
//
// # URL Normalization
//
// Covers from the configured image host are sometimes referenced with an
// insecure http:// URL. NormalizeURL rewrites that prefix to https:// for
// the configured host only. The Resolver applies it before every fetch.
//
// # Errors
//
// Every failure wraps one of these sentinel errors so callers can
// classify it with errors.Is:
//   - ErrNoImage: the reference names nothing
//   - ErrFetch: the remote request failed or returned a non-2xx status
//   - ErrTooLarge: the body exceeded the configured limit
//   - ErrDecode: the bytes are not a supported image
//   - ErrUnknownRegion: the region name is not recognized
//
// # Thread Safety
//
// ImageCache, Fetcher and Resolver are safe for concurrent use.
package source
