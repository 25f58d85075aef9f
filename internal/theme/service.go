// Package theme sits between the palette pipeline and whatever displays the
// result. Service turns a cover reference into a palette and never fails;
// Holder keeps the currently displayed palette and discards stale results.
package theme

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
	"github.com/ironsheep/cover-palette-mcp/internal/store"
)

const defaultCacheEntries = 96

// PixelSource resolves a reference into pixels.
type PixelSource interface {
	Normalize(ref source.Reference) source.Reference
	Resolve(ctx context.Context, ref source.Reference) (*palette.PixelBuffer, error)
}

// PaletteStore persists palettes between runs.
type PaletteStore interface {
	Get(ctx context.Context, key string) (palette.Palette, error)
	Put(ctx context.Context, key, reference string, p palette.Palette) error
}

// ServiceOptions configures a Service. Zero values select defaults.
type ServiceOptions struct {
	// CacheEntries bounds the in-memory palette cache.
	CacheEntries int

	// Store, if set, receives every extracted palette and is consulted
	// when a cover cannot be resolved.
	Store PaletteStore

	// Debug logs every failure that is collapsed into a fallback palette.
	Debug bool
}

type cacheEntry struct {
	palette palette.Palette
	seq     uint64
}

// Service extracts palettes for cover references with caching.
type Service struct {
	source     PixelSource
	extractor  palette.Extractor
	store      PaletteStore
	maxEntries int
	debug      bool

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
	seq     uint64
}

// NewService creates a Service.
func NewService(src PixelSource, extractor palette.Extractor, opts ServiceOptions) *Service {
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = defaultCacheEntries
	}
	return &Service{
		source:     src,
		extractor:  extractor,
		store:      opts.Store,
		maxEntries: opts.CacheEntries,
		debug:      opts.Debug,
		cache:      make(map[string]cacheEntry),
	}
}

// Palette returns the palette for ref. It never fails: a missing reference,
// fetch or decode failure, or a degenerate image all yield the last stored
// palette for ref if there is one, otherwise palette.Fallback().
func (s *Service) Palette(ctx context.Context, ref source.Reference) palette.Palette {
	if ref.Empty() {
		return palette.Fallback()
	}
	ref = s.source.Normalize(ref)
	key := s.cacheKey(ref)

	if p, ok := s.loadCached(key); ok {
		return p
	}

	buf, err := s.source.Resolve(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return palette.Fallback()
		}
		s.logf("resolve %s: %v", ref, err)
		return s.offline(ctx, key)
	}

	p := s.extractor.Extract(buf)
	if ctx.Err() != nil {
		return palette.Fallback()
	}

	s.storeCached(key, p)
	if s.store != nil {
		if err := s.store.Put(ctx, key, ref.Key(), p); err != nil {
			s.logf("persist %s: %v", ref, err)
		}
	}
	return p
}

// Analyze runs the pipeline for ref and reports intermediate results.
// Unlike Palette it returns resolution errors, for diagnostics.
func (s *Service) Analyze(ctx context.Context, ref source.Reference) (palette.Analysis, error) {
	if ref.Empty() {
		return palette.Analysis{}, source.ErrNoImage
	}
	buf, err := s.source.Resolve(ctx, s.source.Normalize(ref))
	if err != nil {
		return palette.Analysis{}, err
	}
	return s.extractor.Analyze(buf), nil
}

// Options returns the extraction options in use.
func (s *Service) Options() palette.Options {
	return s.extractor.Options()
}

// CacheLen returns the number of in-memory cached palettes.
func (s *Service) CacheLen() int {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return len(s.cache)
}

func (s *Service) offline(ctx context.Context, key string) palette.Palette {
	if s.store == nil {
		return palette.Fallback()
	}
	p, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logf("offline lookup %s: %v", key, err)
		}
		return palette.Fallback()
	}
	return p
}

func (s *Service) cacheKey(ref source.Reference) string {
	return ref.Key() + "|" + s.extractor.Options().Fingerprint()
}

func (s *Service) loadCached(key string) (palette.Palette, bool) {
	s.cacheMu.RLock()
	entry, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if !ok {
		return palette.Palette{}, false
	}
	return clonePalette(entry.palette), true
}

func (s *Service) storeCached(key string, p palette.Palette) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.seq++
	s.cache[key] = cacheEntry{palette: clonePalette(p), seq: s.seq}

	if len(s.cache) <= s.maxEntries {
		return
	}

	oldestKey := ""
	var oldestSeq uint64
	for k, entry := range s.cache {
		if oldestKey == "" || entry.seq < oldestSeq {
			oldestKey = k
			oldestSeq = entry.seq
		}
	}
	if oldestKey != "" {
		delete(s.cache, oldestKey)
	}
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.debug {
		log.Printf("theme: "+format, args...)
	}
}

// clonePalette copies the gradient so cached values are never shared with
// callers.
func clonePalette(p palette.Palette) palette.Palette {
	p.Gradient = append([]palette.GradientStop(nil), p.Gradient...)
	return p
}
