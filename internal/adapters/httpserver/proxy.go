package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
)

const (
	// CacheHeader reports which path of the fetch strategy answered.
	CacheHeader = "X-Stamp-Cache"

	// MessagePath accepts control messages for the worker.
	MessagePath = "/__stamp/message"

	maxMessageBytes = 1 << 10
)

// Controller routes intercepted requests and control messages to a worker.
type Controller interface {
	// Connect attaches a client for the duration of one request.
	Connect() (release func(context.Context) error)
	Fetch(ctx context.Context, req *domain.Request) (*domain.Response, error)
	PostMessage(ctx context.Context, msg domain.Message) (bool, error)
}

// Proxy answers requests through the cache worker.
type Proxy struct {
	controller Controller
	logger     ports.Logger
}

// NewProxy creates a proxy handler.
func NewProxy(controller Controller, logger ports.Logger) *Proxy {
	return &Proxy{controller: controller, logger: logger}
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == MessagePath {
		p.serveMessage(w, r)
		return
	}

	release := p.controller.Connect()
	defer func() {
		if err := release(context.WithoutCancel(r.Context())); err != nil {
			p.logger.Error(err)
		}
	}()

	resp, err := p.controller.Fetch(r.Context(), newRequest(r))
	if err != nil {
		if errors.Is(err, domain.ErrWorkerNotActive) {
			setCacheHeader(w.Header(), "unavailable")
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		if r.Context().Err() == nil {
			p.logger.Error(err)
		}
		setCacheHeader(w.Header(), "bad-gateway")
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	writeResponse(w, r, resp)
}

func (p *Proxy) serveMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg domain.Message
	if err := json.NewDecoder(io.LimitReader(r.Body, maxMessageBytes)).Decode(&msg); err != nil {
		http.Error(w, "invalid message", http.StatusBadRequest)
		return
	}

	handled, err := p.controller.PostMessage(r.Context(), msg)
	if err != nil {
		p.logger.Error(err)
		http.Error(w, "message failed", http.StatusInternalServerError)
		return
	}
	if !handled {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func newRequest(r *http.Request) *domain.Request {
	req := domain.NewRequest(r.Method, r.URL.RequestURI())
	req.Header = r.Header.Clone()
	req.Mode = requestMode(r)
	return req
}

// requestMode derives the fetch mode. Browsers send Sec-Fetch-Mode; older
// clients are classified as navigations when they accept HTML.
func requestMode(r *http.Request) domain.RequestMode {
	switch mode := domain.RequestMode(r.Header.Get("Sec-Fetch-Mode")); mode {
	case domain.ModeNavigate, domain.ModeSameOrigin, domain.ModeNoCORS, domain.ModeCORS:
		return mode
	}
	if r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html") {
		return domain.ModeNavigate
	}
	return domain.ModeSameOrigin
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp *domain.Response) {
	h := w.Header()
	for k, vs := range resp.Header {
		if strings.EqualFold(k, CacheHeader) {
			continue
		}
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	setCacheHeader(h, string(resp.Served))

	etag := h.Get("ETag")
	if etag == "" && resp.OK() {
		etag = `"` + strconv.FormatUint(xxhash.Sum64(resp.Body), 16) + `"`
		h.Set("ETag", etag)
	}
	if etag != "" && resp.OK() && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(resp.Body)
	}
}

func setCacheHeader(h http.Header, value string) {
	if value != "" {
		h.Set(CacheHeader, value)
	}
	ensureExposedHeader(h, CacheHeader)
}

// ensureExposedHeader makes name readable from cross-origin scripts.
func ensureExposedHeader(h http.Header, name string) {
	const expose = "Access-Control-Expose-Headers"
	cur := h.Values(expose)
	if len(cur) == 0 {
		h.Set(expose, name)
		return
	}

	merged := strings.Join(cur, ",")
	for part := range strings.SplitSeq(merged, ",") {
		if strings.EqualFold(strings.TrimSpace(part), name) {
			return
		}
	}
	h.Set(expose, strings.TrimSpace(merged)+", "+name)
}
