package resource

import "context"

// GlobalContext is the process-scoped state shared by every node in a
// render pass: the font registry, the two image stores, and a debug flag.
// A single GlobalContext is built once, can be shared across render calls,
// and is handed down through RenderContext; nothing in it is mutated concurrently except
// through the stores' own internal locking.
type GlobalContext struct {
	Fonts      *FontRegistry
	Persistent *PersistentStore
	Fetch      *FetchStore

	// DrawDebugBorder, when set, makes every node's paint step also stroke
	// a one-pixel outline of its border-box, independent of its declared
	// border — a layout debugging aid, not a style feature.
	DrawDebugBorder bool
}

// NewGlobalContext wires the three resource subsystems together. fetcher
// may be nil if the embedder never resolves remote image URLs; Resolve
// then only ever consults the persistent store.
func NewGlobalContext(fetchCacheCapacity int, fetcher Fetcher) *GlobalContext {
	return &GlobalContext{
		Fonts:      NewFontRegistry(),
		Persistent: NewPersistentStore(),
		Fetch:      NewFetchStore(fetchCacheCapacity, fetcher),
	}
}

// Resolve implements the three-step hydration lookup an Image node's
// Hydrate performs for a given src string: a persistent-store hit first
// (data URIs, embedder-seeded assets), then a fetch-store hit or fetch.
// A src with no registered fetcher and no persistent entry yields a
// NetworkError state rather than an error return, matching the rest of
// the resource model where fetch failures are data, not control flow.
func (g *GlobalContext) Resolve(ctx context.Context, src string) ImageState {
	if bmp, ok := g.Persistent.Get(src); ok {
		return ImageState{Source: &bmp}
	}
	if g.Fetch == nil || g.Fetch.fetcher == nil {
		return ImageState{NetworkError: true}
	}
	return g.Fetch.Fetch(ctx, src)
}
