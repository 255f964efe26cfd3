package resource

import (
	"context"
	"testing"
)

func TestGlobalContextResolvePrefersPersistentStore(t *testing.T) {
	g := NewGlobalContext(10, nil)
	g.Persistent.Insert("local://logo", ImageSource{Bitmap: nil})

	state := g.Resolve(context.Background(), "local://logo")
	if state.Failed() {
		t.Fatalf("expected persistent-store hit to succeed")
	}
}

func TestGlobalContextResolveWithoutFetcherIsNetworkError(t *testing.T) {
	g := NewGlobalContext(10, nil)
	state := g.Resolve(context.Background(), "https://example.com/missing.png")
	if !state.NetworkError {
		t.Fatalf("expected NetworkError when no fetcher is configured")
	}
}
