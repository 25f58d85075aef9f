package source

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
)

// Reference identifies a cover. At most one of URL and Path is expected; URL
// wins when both are set.
type Reference struct {
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
	Region string `json:"region,omitempty"`
}

// ParseReference classifies a single string as a URL or a local path.
func ParseReference(ref, region string) Reference {
	ref = strings.TrimSpace(ref)
	if IsRemote(ref) {
		return Reference{URL: ref, Region: region}
	}
	return Reference{Path: ref, Region: region}
}

// Empty reports whether the reference names no image.
func (r Reference) Empty() bool {
	return strings.TrimSpace(r.URL) == "" && strings.TrimSpace(r.Path) == ""
}

// Key returns a stable identifier for caching.
func (r Reference) Key() string {
	target := strings.TrimSpace(r.URL)
	if target == "" {
		target = "file:" + strings.TrimSpace(r.Path)
	}
	if r.Region == "" || r.Region == "full" {
		return target
	}
	return target + "#" + r.Region
}

// String implements fmt.Stringer.
func (r Reference) String() string {
	return r.Key()
}

// Resolver turns references into pixel buffers.
type Resolver struct {
	cache     *ImageCache
	fetcher   *Fetcher
	imageHost string
}

// NewResolver creates a Resolver. imageHost is the host whose http:// URLs
// are upgraded to https:// before fetching; it may be empty.
func NewResolver(cache *ImageCache, fetcher *Fetcher, imageHost string) *Resolver {
	if cache == nil {
		cache = NewImageCache()
	}
	if fetcher == nil {
		fetcher = NewFetcher(FetchOptions{})
	}
	return &Resolver{cache: cache, fetcher: fetcher, imageHost: imageHost}
}

// Normalize returns ref with its URL normalized for the configured host.
func (r *Resolver) Normalize(ref Reference) Reference {
	if ref.URL != "" {
		ref.URL = NormalizeURL(ref.URL, r.imageHost)
	}
	ref.Path = strings.TrimSpace(ref.Path)
	return ref
}

// Image loads or fetches the cover named by ref and crops its region.
// An empty reference returns ErrNoImage without any I/O.
func (r *Resolver) Image(ctx context.Context, ref Reference) (image.Image, error) {
	if ref.Empty() {
		return nil, ErrNoImage
	}
	ref = r.Normalize(ref)

	var (
		img image.Image
		err error
	)
	if ref.URL != "" {
		var data []byte
		data, err = r.fetcher.Fetch(ctx, ref.URL)
		if err != nil {
			return nil, err
		}
		img, err = DecodeBytes(data)
	} else {
		img, err = r.cache.Load(ref.Path)
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cropped, err := CropRegion(img, ref.Region)
	if err != nil {
		return nil, fmt.Errorf("crop %s: %w", ref, err)
	}
	return cropped, nil
}

// Resolve is Image converted to a pixel buffer.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (*palette.PixelBuffer, error) {
	img, err := r.Image(ctx, ref)
	if err != nil {
		return nil, err
	}
	return palette.NewPixelBuffer(img), nil
}

// Cache returns the resolver's image cache.
func (r *Resolver) Cache() *ImageCache {
	return r.cache
}
