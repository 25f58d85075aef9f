package app

import (
	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
	"github.com/ironsheep/cover-palette-mcp/internal/store"
	"github.com/ironsheep/cover-palette-mcp/internal/theme"
)

// services holds the collaborators built from the loaded config.
type services struct {
	resolver *source.Resolver
	service  *theme.Service
	store    *store.Store
}

// newServices wires resolver, service and the optional palette store. A store
// that cannot be opened is reported and skipped.
func newServices() (*services, error) {
	fetchOpts, err := cfg.FetchOptions()
	if err != nil {
		return nil, err
	}
	resolver := source.NewResolver(source.NewImageCache(), source.NewFetcher(fetchOpts), cfg.Fetch.ImageHost)

	sv := &services{resolver: resolver}
	svcOpts := theme.ServiceOptions{
		CacheEntries: cfg.Cache.Entries,
		Debug:        cfg.Debug(),
	}
	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			warn("palette store disabled: %v", err)
		} else {
			sv.store = db
			svcOpts.Store = db
		}
	}

	sv.service = theme.NewService(resolver, palette.NewExtractor(cfg.ExtractOptions()), svcOpts)
	return sv, nil
}

// Close releases the palette store, if one was opened.
func (sv *services) Close() error {
	if sv.store == nil {
		return nil
	}
	return sv.store.Close()
}
