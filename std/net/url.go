package net

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultHTTPPort  = 80
	defaultHTTPSPort = 443
)

// URL is the subset of a URL the fetcher understands: scheme://host[:port]/path.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// ParseURL splits rawURL into scheme, host, port and path.
// A URL with nothing after the host gets the path "/".
func ParseURL(rawURL string) (*URL, error) {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return nil, fmt.Errorf("%w: missing scheme separator in %q", ErrMalformedURL, rawURL)
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrMalformedURL, scheme)
	}

	host, path, _ := strings.Cut(rest, "/")
	u := &URL{Scheme: scheme, Host: host, Path: "/" + path}

	u.Port = defaultHTTPPort
	if scheme == "https" {
		u.Port = defaultHTTPSPort
	}
	if h, p, found := strings.Cut(host, ":"); found {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: bad port %q", ErrMalformedURL, p)
		}
		u.Host = h
		u.Port = port
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: empty host in %q", ErrMalformedURL, rawURL)
	}
	return u, nil
}

func (u *URL) String() string {
	if (u.Scheme == "http" && u.Port == defaultHTTPPort) || (u.Scheme == "https" && u.Port == defaultHTTPSPort) {
		return u.Scheme + "://" + u.Host + u.Path
	}
	return u.Scheme + "://" + u.Host + ":" + strconv.Itoa(u.Port) + u.Path
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
