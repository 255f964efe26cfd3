package resource

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchStore is a bounded LRU cache of ImageState keyed by URL, populated
// on demand by hydration. fetch() is race-free: concurrent calls for the
// same key share a single in-flight Fetcher round-trip via singleflight,
// so two hydrations requesting the same URL observe the same outcome and
// exactly one network call occurs.
type FetchStore struct {
	capacity int
	fetcher  Fetcher

	mu    sync.Mutex
	ll    *list.List // front = most recently used
	index map[string]*list.Element

	group singleflight.Group
}

type fetchEntry struct {
	key   string
	state ImageState
}

// NewFetchStore builds a FetchStore with the given LRU capacity (the
// default of 100 entries is used by callers that don't override it) backed
// by fetcher for cache misses.
func NewFetchStore(capacity int, fetcher Fetcher) *FetchStore {
	if capacity <= 0 {
		capacity = 100
	}
	return &FetchStore{
		capacity: capacity,
		fetcher:  fetcher,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get returns a cached entry without triggering a fetch.
func (s *FetchStore) Get(key string) (ImageState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.index[key]
	if !ok {
		return ImageState{}, false
	}
	s.ll.MoveToFront(el)
	return el.Value.(*fetchEntry).state, true
}

// Insert stores state under key, evicting the least-recently-used entry if
// the store is at capacity.
func (s *FetchStore) Insert(key string, state ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(key, state)
}

func (s *FetchStore) insertLocked(key string, state ImageState) {
	if el, ok := s.index[key]; ok {
		el.Value.(*fetchEntry).state = state
		s.ll.MoveToFront(el)
		return
	}
	el := s.ll.PushFront(&fetchEntry{key: key, state: state})
	s.index[key] = el
	if s.ll.Len() > s.capacity {
		oldest := s.ll.Back()
		if oldest != nil {
			s.ll.Remove(oldest)
			delete(s.index, oldest.Value.(*fetchEntry).key)
		}
	}
}

// Len reports the current number of cached entries, mainly for tests that
// assert on LRU eviction and coalescing behavior.
func (s *FetchStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// Fetch returns the cached state for url if present; otherwise it calls the
// underlying Fetcher exactly once even under concurrent callers for the
// same url, decodes the result, caches it, and returns it to every caller.
func (s *FetchStore) Fetch(ctx context.Context, url string) ImageState {
	if state, ok := s.Get(url); ok {
		return state
	}

	v, _, _ := s.group.Do(url, func() (any, error) {
		if state, ok := s.Get(url); ok {
			return state, nil
		}
		data, err := s.fetcher.Fetch(ctx, url)
		var state ImageState
		switch {
		case err != nil:
			state = ImageState{NetworkError: true}
		default:
			src, decErr := DecodeImage(data)
			if decErr != nil {
				state = ImageState{DecodeError: decErr.Error()}
			} else {
				state = ImageState{Source: &src}
			}
		}
		s.Insert(url, state)
		return state, nil
	})
	return v.(ImageState)
}
