package resource

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func onePixelPNG() []byte {
	// A minimal 1x1 transparent PNG.
	return []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
		0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
		0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
		0x42, 0x60, 0x82,
	}
}

func TestFetchStoreCachesAndEvicts(t *testing.T) {
	var calls int32
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return onePixelPNG(), nil
	})
	store := NewFetchStore(2, fetcher)

	for _, url := range []string{"a", "b", "c"} {
		state := store.Fetch(context.Background(), url)
		if state.Failed() {
			t.Fatalf("fetch %s: unexpected failure", url)
		}
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after eviction", store.Len())
	}
	if _, ok := store.Get("a"); ok {
		t.Fatalf("expected \"a\" to have been evicted")
	}
}

func TestFetchStoreCoalescesConcurrentFetches(t *testing.T) {
	var calls int32
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return onePixelPNG(), nil
	})
	store := NewFetchStore(10, fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Fetch(context.Background(), "shared")
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("fetcher called %d times, want 1", got)
	}
}

func TestFetchStoreNetworkError(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return nil, context.DeadlineExceeded
	})
	store := NewFetchStore(10, fetcher)
	state := store.Fetch(context.Background(), "broken")
	if !state.NetworkError {
		t.Fatalf("expected NetworkError state")
	}
}
