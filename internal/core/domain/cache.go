package domain

import (
	"net/http"
	"slices"
	"strings"
)

// RequestMode mirrors the fetch mode of an incoming request.
type RequestMode string

const (
	// ModeNavigate is a top-level document navigation.
	ModeNavigate RequestMode = "navigate"
	// ModeSameOrigin is a subresource request to the same origin.
	ModeSameOrigin RequestMode = "same-origin"
	// ModeNoCORS is an opaque cross-origin subresource request.
	ModeNoCORS RequestMode = "no-cors"
	// ModeCORS is a cross-origin request subject to CORS.
	ModeCORS RequestMode = "cors"
)

// ServedFrom records which path of the fetch strategy produced a response.
type ServedFrom string

const (
	// ServedFromCache means the response was found in a cache store.
	ServedFromCache ServedFrom = "hit"
	// ServedFromNetwork means the response came from the network.
	ServedFromNetwork ServedFrom = "miss"
	// ServedFromFallback means the network failed and the cached entry document was used.
	ServedFromFallback ServedFrom = "fallback"
)

// Request is a fetch request routed through the cache worker.
type Request struct {
	Method string
	// URL is either absolute or a path with optional query, relative to the origin.
	URL    string
	Mode   RequestMode
	Header http.Header
}

// NewRequest returns a GET-style request with an empty header set.
func NewRequest(method, url string) *Request {
	return &Request{
		Method: method,
		URL:    url,
		Mode:   ModeSameOrigin,
		Header: make(http.Header),
	}
}

// IsGet reports whether the request uses the GET method.
func (r *Request) IsGet() bool {
	return r.Method == "" || strings.EqualFold(r.Method, http.MethodGet)
}

// IsNavigation reports whether the request is a document navigation.
func (r *Request) IsNavigation() bool {
	return r.Mode == ModeNavigate
}

// Response is a stored or fetched response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	// Served is set by the worker and never persisted.
	Served ServedFrom
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// Clone returns a deep copy so a response can be stored and returned independently.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{
		Status: r.Status,
		Header: r.Header.Clone(),
		Body:   slices.Clone(r.Body),
		Served: r.Served,
	}
}

// CacheEntry is a request/response pair held by a cache store.
type CacheEntry struct {
	URL      string
	Response *Response
}

// StaticStoreName returns the name of the store pre-warmed on install.
func StaticStoreName(version string) string {
	return "static-" + version
}

// DynamicStoreName returns the name of the store filled at runtime.
func DynamicStoreName(version string) string {
	return "dynamic-" + version
}

// PrecacheURLs are fetched into the static store when a worker installs.
var PrecacheURLs = []string{
	"/",
	"/" + EntryDocument,
	WebManifestPath,
}

// AssetSuffixes select responses that are copied into the dynamic store.
var AssetSuffixes = []string{
	".js",
	".css",
	".png",
	".jpg",
	".jpeg",
	".gif",
	".svg",
	".webp",
	".ico",
}

// IsCacheableAsset reports whether url contains one of the asset suffixes.
// The match is a substring match, so "/app.js?v=2" and "/x.jsx" both qualify.
func IsCacheableAsset(url string) bool {
	for _, suffix := range AssetSuffixes {
		if strings.Contains(url, suffix) {
			return true
		}
	}
	return false
}
