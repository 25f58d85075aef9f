package theme

import (
	"context"
	"sync"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
)

// PaletteProvider produces a palette for a reference without failing.
// *Service implements it.
type PaletteProvider interface {
	Palette(ctx context.Context, ref source.Reference) palette.Palette
}

// Snapshot is the palette currently published by a Holder.
type Snapshot struct {
	// Generation is the request generation that produced the palette. Zero
	// means nothing has been published yet.
	Generation uint64           `json:"generation"`
	Reference  source.Reference `json:"reference"`
	Palette    palette.Palette  `json:"palette"`
}

// Holder owns the palette shown for the currently selected cover.
//
// Every Request gets a new generation number and cancels the request it
// supersedes. A finished extraction is published only if its generation is
// still the latest, so a slow result for an old cover can never replace the
// palette of a newer one.
type Holder struct {
	provider  PaletteProvider
	onPublish func(Snapshot)

	mu         sync.Mutex
	generation uint64
	cancelled  uint64
	cancel     context.CancelFunc
	current    Snapshot

	notifyMu sync.Mutex
	notified uint64

	wg sync.WaitGroup
}

// NewHolder creates a Holder whose initial snapshot holds the fallback
// palette. onPublish, if not nil, is called once for every accepted
// publication, in generation order, outside the holder's lock.
func NewHolder(provider PaletteProvider, onPublish func(Snapshot)) *Holder {
	return &Holder{
		provider:  provider,
		onPublish: onPublish,
		current:   Snapshot{Palette: palette.Fallback()},
	}
}

// Request starts extraction for ref on its own goroutine and returns the
// generation assigned to it. Any in-flight request is cancelled.
func (h *Holder) Request(parent context.Context, ref source.Reference) uint64 {
	ctx, cancel := context.WithCancel(parent)

	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	h.generation++
	gen := h.generation
	h.cancel = cancel
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		defer cancel()
		p := h.provider.Palette(ctx, ref)
		if ctx.Err() != nil {
			return
		}
		h.publish(gen, ref, p)
	}()

	return gen
}

// publish records p if gen is still the latest generation. It reports whether
// the result was accepted.
func (h *Holder) publish(gen uint64, ref source.Reference, p palette.Palette) bool {
	h.mu.Lock()
	if gen != h.generation || gen <= h.cancelled {
		h.mu.Unlock()
		return false
	}
	h.current = Snapshot{Generation: gen, Reference: ref, Palette: p}
	snap := h.current
	h.mu.Unlock()

	if h.onPublish != nil {
		h.notifyMu.Lock()
		if snap.Generation > h.notified {
			h.notified = snap.Generation
			h.onPublish(snap)
		}
		h.notifyMu.Unlock()
	}
	return true
}

// Current returns the latest published snapshot.
func (h *Holder) Current() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	snap := h.current
	snap.Palette.Gradient = append([]palette.GradientStop(nil), snap.Palette.Gradient...)
	return snap
}

// Generation returns the latest requested generation.
func (h *Holder) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generation
}

// Pending reports whether the latest request is still running: it has been
// neither published nor cancelled.
func (h *Holder) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pendingLocked()
}

func (h *Holder) pendingLocked() bool {
	return h.current.Generation != h.generation && h.cancelled != h.generation
}

// Cancel aborts the in-flight request, if any, and reports whether one was
// pending. The aborted request never publishes; the current snapshot is kept.
func (h *Holder) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.pendingLocked()
	h.cancelled = h.generation
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	return pending
}

// Wait blocks until every started request has finished.
func (h *Holder) Wait() {
	h.wg.Wait()
}
