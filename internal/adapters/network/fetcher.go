// Package network fetches requests that miss the cache from an origin server.
package network

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds a single origin round trip.
const DefaultTimeout = 30 * time.Second

// hopHeaders are connection-scoped and never forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Fetcher implements ports.Network over HTTP.
type Fetcher struct {
	origin *url.URL
	client *http.Client
}

// NewFetcher creates a Fetcher resolving request URLs against origin.
// A nil client selects one with DefaultTimeout.
func NewFetcher(origin string, client *http.Client) (*Fetcher, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, zerr.With(zerr.New("origin must be an absolute URL"), "origin", origin)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{origin: u, client: client}, nil
}

// Origin returns the origin URL.
func (f *Fetcher) Origin() *url.URL {
	return f.origin
}

// Fetch performs req against the origin. Any HTTP status is a response; only
// transport failures are errors.
func (f *Fetcher) Fetch(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	target, err := f.origin.Parse(req.URL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetworkFailed.Error()), "url", req.URL)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetworkFailed.Error()), "url", req.URL)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	removeHopHeaders(httpReq.Header)
	// Stored bodies are kept decoded; the transport negotiates compression.
	httpReq.Header.Del("Accept-Encoding")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetworkFailed.Error()), "url", target.String())
	}
	defer func() { _ = resp.Body.Close() }()

	var body bytes.Buffer
	if _, err := io.Copy(&body, resp.Body); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetworkFailed.Error()), "url", target.String())
	}

	header := resp.Header.Clone()
	removeHopHeaders(header)

	return &domain.Response{
		Status: resp.StatusCode,
		Header: header,
		Body:   body.Bytes(),
	}, nil
}

func removeHopHeaders(h http.Header) {
	for _, k := range hopHeaders {
		h.Del(k)
	}
}
