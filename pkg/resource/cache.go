package resource

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	stdnet "quill/std/net"
)

// CachingFetcher keeps successful network fetches for ttl. Local files and
// failed fetches always go to the wrapped fetcher.
type CachingFetcher struct {
	next  Fetcher
	pages *cache.Cache
}

func NewCachingFetcher(next Fetcher, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{next: next, pages: cache.New(ttl, 2*ttl)}
}

func (f *CachingFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	if !stdnet.IsNetworkURL(uri) {
		return f.next.Fetch(ctx, uri)
	}
	if body, ok := f.pages.Get(uri); ok {
		return body.(string), nil
	}
	body, err := f.next.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	f.pages.SetDefault(uri, body)
	return body, nil
}

// Forget drops uri so the next Fetch goes to the network.
func (f *CachingFetcher) Forget(uri string) {
	f.pages.Delete(uri)
}
