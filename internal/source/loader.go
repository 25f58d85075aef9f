package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageCache provides thread-safe caching of decoded cover files to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image values keyed by their file path. Once a
// cover is loaded, subsequent Load calls for the same path return the cached
// copy without disk I/O.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict or Clear.
// Covers are small, but long-running servers handling many books should clear
// the cache periodically.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a cover from the cache or decodes it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative path to the cover file.
//
// Returns:
//   - image.Image: The decoded, orientation-corrected cover.
//   - error: wraps ErrNoImage if the file cannot be opened, ErrDecode if it is
//     not a supported image.
//
// The cover is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrNoImage, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached covers.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all covers from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific cover from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// CoverInfo contains metadata about a cover file.
type CoverInfo struct {
	// Width is the image width in pixels, after orientation correction.
	Width int `json:"width"`

	// Height is the image height in pixels, after orientation correction.
	Height int `json:"height"`

	// Format is the detected format from the file contents, e.g. "jpeg",
	// "png", "webp", or "unknown".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadCoverInfo loads a cover through the cache and reports its metadata.
//
// # Format Detection
//
// The format comes from the file header, falling back to the extension when
// the header is not recognized by any registered decoder.
func LoadCoverInfo(cache *ImageCache, path string) (*CoverInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := os.Open(path); err == nil {
		if _, name, err := image.DecodeConfig(f); err == nil {
			format = name
		}
		f.Close()
	}
	if format == "unknown" {
		format = formatFromExt(path)
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &CoverInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	case ".avif":
		return "avif"
	case ".qoi":
		return "qoi"
	case ".bmp":
		return "bmp"
	}
	return "unknown"
}
