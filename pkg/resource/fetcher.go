package resource

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	stdnet "quill/std/net"
)

// Fetcher retrieves a document's markup by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (string, error)
}

// DefaultFetcher fetches http and https URLs over the network and reads
// anything without a scheme from the local filesystem.
type DefaultFetcher struct {
	client *stdnet.Client
}

// NewFetcher creates a DefaultFetcher. A nil client uses stdnet.DefaultClient.
func NewFetcher(client *stdnet.Client) *DefaultFetcher {
	if client == nil {
		client = stdnet.DefaultClient
	}
	return &DefaultFetcher{client: client}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	// Any other scheme goes to the client so it is rejected as a malformed URL.
	if stdnet.IsNetworkURL(uri) || strings.Contains(uri, "://") {
		resp, err := f.client.Fetch(ctx, uri)
		if err != nil {
			return "", err
		}
		return resp.Body, nil
	}
	data, err := os.ReadFile(uri)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", uri, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid utf-8", stdnet.ErrEncoding, uri)
	}
	return string(data), nil
}
