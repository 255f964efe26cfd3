// Package resource implements the two collaborating image stores, the
// font registry, and the hydration entry point a GlobalContext exposes to
// the node tree.
package resource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ImageSource is either a decoded raster bitmap or a raw SVG document,
// parsed only when it is measured or rasterized.
type ImageSource struct {
	Bitmap image.Image // nil if Svg is set
	Svg    []byte      // raw SVG bytes, nil if Bitmap is set
}

func (s ImageSource) IsSvg() bool { return s.Svg != nil }

// IntrinsicSize returns the source's natural width/height in logical
// pixels. For SVG it reports ok=false; SVGIntrinsicSize parses the
// document for its size.
func (s ImageSource) IntrinsicSize() (w, h int, ok bool) {
	if s.Bitmap == nil {
		return 0, 0, false
	}
	b := s.Bitmap.Bounds()
	return b.Dx(), b.Dy(), true
}

// ImageState is the outcome of resolving an image node's src: exactly one
// of Source is set, or one of the two error kinds describes why not.
type ImageState struct {
	Source       *ImageSource
	NetworkError bool
	DecodeError  string
}

func (s ImageState) Failed() bool { return s.Source == nil }

// DecodeImage sniffs and decodes raw bytes into an ImageSource: SVG is
// detected by looking for an <svg ...xmlns="http://www.w3.org/2000/svg">
// opening tag in the first portion of the (UTF-8 decoded) bytes; anything
// else is attempted as a raster format.
func DecodeImage(data []byte) (ImageSource, error) {
	if looksLikeSVG(data) {
		return ImageSource{Svg: data}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		_ = format
		return ImageSource{Bitmap: img}, nil
	}

	// image.Decode only knows formats registered via blank import; webp and
	// bmp are registered explicitly below since the standard library does
	// not include decoders for either.
	if img, err2 := webp.Decode(bytes.NewReader(data)); err2 == nil {
		return ImageSource{Bitmap: img}, nil
	}
	if img, err2 := bmp.Decode(bytes.NewReader(data)); err2 == nil {
		return ImageSource{Bitmap: img}, nil
	}

	return ImageSource{}, fmt.Errorf("unrecognized image format: %w", err)
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	s := string(head)
	return strings.Contains(s, "<svg") && (strings.Contains(s, "xmlns=\"http://www.w3.org/2000/svg\"") || strings.Contains(s, "xmlns='http://www.w3.org/2000/svg'"))
}

// PersistentStore is an unbounded keyed map of pre-populated image
// sources — used for data URIs and embedder-supplied assets. Entries are
// never evicted.
type PersistentStore struct {
	mu      sync.RWMutex
	entries map[string]ImageSource
}

func NewPersistentStore() *PersistentStore {
	return &PersistentStore{entries: make(map[string]ImageSource)}
}

func (s *PersistentStore) Get(key string) (ImageSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *PersistentStore) Insert(key string, src ImageSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = src
}

func (s *PersistentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]ImageSource)
}

// Fetcher retrieves the raw bytes for a URL. A real embedder supplies an
// http.Client-backed implementation; tests use a stub.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }
