package cachestore_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/cachestore"
	"go.trai.ch/stamp/internal/core/domain"
)

func openMemory(t *testing.T) *cachestore.Storage {
	t.Helper()
	s, err := cachestore.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func get(url string) *domain.Request {
	return domain.NewRequest(http.MethodGet, url)
}

func ok(body string) *domain.Response {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain")
	return &domain.Response{Status: http.StatusOK, Header: h, Body: []byte(body)}
}

func TestStorage_OpenIsIdempotentAndOrdered(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	for _, name := range []string{"static-2", "dynamic-2", "static-2", "static-1"} {
		c, err := s.Open(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"static-2", "dynamic-2", "static-1"}, keys)
}

func TestCache_PutMatchKeys(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	c, err := s.Open(ctx, "static-1")
	require.NoError(t, err)

	require.NoError(t, c.PutAll(ctx, []domain.CacheEntry{
		{URL: "/", Response: ok("root")},
		{URL: "/index.html", Response: ok("index")},
	}))
	require.NoError(t, c.Put(ctx, get("/app.js"), ok("js")))

	resp, err := c.Match(ctx, get("/index.html"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "index", string(resp.Body))
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))

	miss, err := c.Match(ctx, get("/missing"))
	require.NoError(t, err)
	assert.Nil(t, miss)

	urls, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/app.js", "/index.html"}, urls)
}

func TestStorage_MatchSearchesStoresInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	older, err := s.Open(ctx, "static-1")
	require.NoError(t, err)
	newer, err := s.Open(ctx, "static-2")
	require.NoError(t, err)
	require.NoError(t, older.Put(ctx, get("/"), ok("v1")))
	require.NoError(t, newer.Put(ctx, get("/"), ok("v2")))
	require.NoError(t, newer.Put(ctx, get("/new.css"), ok("css")))

	resp, err := s.Match(ctx, get("/"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(resp.Body))

	resp, err = s.Match(ctx, get("/new.css"))
	require.NoError(t, err)
	assert.Equal(t, "css", string(resp.Body))

	resp, err = s.Match(ctx, domain.NewRequest(http.MethodPost, "/"))
	require.NoError(t, err)
	assert.Nil(t, resp, "only GET requests match")
}

func TestStorage_DeleteRemovesEntries(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	c, err := s.Open(ctx, "static-1")
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, get("/"), ok("v1")))
	keep, err := s.Open(ctx, "static-10")
	require.NoError(t, err)
	require.NoError(t, keep.Put(ctx, get("/"), ok("v10")))

	deleted, err := s.Delete(ctx, "static-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "static-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"static-10"}, keys)

	resp, err := s.Match(ctx, get("/"))
	require.NoError(t, err)
	assert.Equal(t, "v10", string(resp.Body))

	// A handle to a deleted store no longer writes.
	require.NoError(t, c.Put(ctx, get("/late.js"), ok("late")))
	reopened, err := s.Open(ctx, "static-1")
	require.NoError(t, err)
	urls, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestStorage_LookupNeverCreates(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	missing, err := s.Lookup(ctx, "dynamic-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.Open(ctx, "dynamic-1")
	require.NoError(t, err)
	found, err := s.Lookup(ctx, "dynamic-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "dynamic-1", found.Name())

	_, err = s.Delete(ctx, "dynamic-1")
	require.NoError(t, err)
	gone, err := s.Lookup(ctx, "dynamic-1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache")

	s, err := cachestore.Open(path)
	require.NoError(t, err)
	_, err = s.Open(ctx, "static-1")
	require.NoError(t, err)
	c, err := s.Open(ctx, "dynamic-1")
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, get("/logo.svg"), ok("<svg/>")))
	require.NoError(t, s.Close())

	s, err = cachestore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Open(ctx, "static-2")
	require.NoError(t, err)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"static-1", "dynamic-1", "static-2"}, keys)

	resp, err := s.Match(ctx, get("/logo.svg"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "<svg/>", string(resp.Body))
}
