package worker_test

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"sync"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
)

var errOffline = errors.New("offline")

type memStorage struct {
	mu      sync.Mutex
	order   []string
	stores  map[string]*memCache
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{stores: make(map[string]*memCache)}
}

func (s *memStorage) Open(_ context.Context, name string) (ports.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.stores[name]; ok {
		return c, nil
	}
	c := &memCache{name: name, entries: make(map[string]*domain.Response)}
	s.stores[name] = c
	s.order = append(s.order, name)
	return c, nil
}

func (s *memStorage) Lookup(_ context.Context, name string) (ports.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.stores[name]; ok {
		return c, nil
	}
	return nil, nil
}

func (s *memStorage) Keys(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order), nil
}

func (s *memStorage) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[name]; !ok {
		return false, nil
	}
	delete(s.stores, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	s.deleted = append(s.deleted, name)
	return true, nil
}

func (s *memStorage) Match(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	s.mu.Lock()
	caches := make([]*memCache, 0, len(s.order))
	for _, name := range s.order {
		caches = append(caches, s.stores[name])
	}
	s.mu.Unlock()

	for _, c := range caches {
		resp, err := c.Match(ctx, req)
		if err != nil || resp != nil {
			return resp, err
		}
	}
	return nil, nil
}

func (s *memStorage) Close() error { return nil }

func (s *memStorage) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

func (s *memStorage) urls(name string) []string {
	s.mu.Lock()
	c, ok := s.stores[name]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	keys, _ := c.Keys(context.Background())
	return keys
}

func (s *memStorage) seed(name, url string, body string) {
	c, _ := s.Open(context.Background(), name)
	_ = c.Put(context.Background(), domain.NewRequest(http.MethodGet, url), &domain.Response{
		Status: http.StatusOK,
		Header: make(http.Header),
		Body:   []byte(body),
	})
}

type memCache struct {
	name    string
	mu      sync.Mutex
	entries map[string]*domain.Response
}

func (c *memCache) Name() string { return c.name }

func (c *memCache) Match(_ context.Context, req *domain.Request) (*domain.Response, error) {
	if !req.IsGet() {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[req.URL].Clone(), nil
}

func (c *memCache) Put(_ context.Context, req *domain.Request, resp *domain.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[req.URL] = resp.Clone()
	return nil
}

func (c *memCache) PutAll(ctx context.Context, entries []domain.CacheEntry) error {
	for _, e := range entries {
		if err := c.Put(ctx, domain.NewRequest(http.MethodGet, e.URL), e.Response); err != nil {
			return err
		}
	}
	return nil
}

func (c *memCache) Keys(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.entries)), nil
}

type fakeNetwork struct {
	mu      sync.Mutex
	pages   map[string]*domain.Response
	offline bool
	calls   map[string]int
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		pages: map[string]*domain.Response{
			"/":              page(http.StatusOK, "<html>root</html>"),
			"/index.html":    page(http.StatusOK, "<html>root</html>"),
			"/manifest.json": page(http.StatusOK, `{"name":"site"}`),
		},
		calls: make(map[string]int),
	}
}

func page(status int, body string) *domain.Response {
	return &domain.Response{Status: status, Header: make(http.Header), Body: []byte(body)}
}

func (n *fakeNetwork) Fetch(_ context.Context, req *domain.Request) (*domain.Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls[req.URL]++
	if n.offline {
		return nil, errOffline
	}
	if resp, ok := n.pages[req.URL]; ok {
		return resp.Clone(), nil
	}
	return page(http.StatusNotFound, "not found"), nil
}

func (n *fakeNetwork) set(url string, resp *domain.Response) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages[url] = resp
}

func (n *fakeNetwork) goOffline() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.offline = true
}

func (n *fakeNetwork) count(url string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[url]
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End() {}
func (nopSpan) RecordError(error) {}
func (nopSpan) SetAttribute(string, any) {}
