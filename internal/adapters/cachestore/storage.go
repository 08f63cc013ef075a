// Package cachestore persists named cache stores in LevelDB.
//
// Layout:
//
//	n:<store>              -> gob(storeMeta)
//	e:<store>\x00<urlhash> -> gob(record)
package cachestore

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	storePrefix = "n:"
	entryPrefix = "e:"
)

type storeMeta struct {
	Seq     uint64
	Created int64
}

type record struct {
	URL    string
	Status int
	Header http.Header
	Body   []byte
}

// Storage implements ports.CacheStorage.
type Storage struct {
	db *leveldb.DB

	mu  sync.Mutex
	seq uint64
}

// Open opens or creates the stores persisted at path.
func Open(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "path", path)
	}
	return newStorage(db)
}

// OpenMemory opens stores that live only in memory.
func OpenMemory() (*Storage, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	return newStorage(db)
}

func newStorage(db *leveldb.DB) (*Storage, error) {
	s := &Storage{db: db}
	metas, err := s.metas()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, m := range metas {
		s.seq = max(s.seq, m.meta.Seq)
	}
	return s, nil
}

type namedMeta struct {
	name string
	meta storeMeta
}

func (s *Storage) metas() ([]namedMeta, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte(storePrefix)), nil)
	defer it.Release()

	var out []namedMeta
	for it.Next() {
		var meta storeMeta
		if err := decodeGob(it.Value(), &meta); err != nil {
			continue
		}
		out = append(out, namedMeta{
			name: string(bytes.TrimPrefix(it.Key(), []byte(storePrefix))),
			meta: meta,
		})
	}
	if err := it.Error(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}

	slices.SortFunc(out, func(a, b namedMeta) int {
		switch {
		case a.meta.Seq < b.meta.Seq:
			return -1
		case a.meta.Seq > b.meta.Seq:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (s *Storage) exists(name string) (bool, error) {
	ok, err := s.db.Has([]byte(storePrefix+name), nil)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", name)
	}
	return ok, nil
}

// Open returns the named store, creating it when it does not exist.
func (s *Storage) Open(_ context.Context, name string) (ports.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		meta, err := encodeGob(storeMeta{Seq: s.seq + 1, Created: time.Now().Unix()})
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
		}
		if err := s.db.Put([]byte(storePrefix+name), meta, nil); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", name)
		}
		s.seq++
	}

	return &Cache{name: name, storage: s}, nil
}

// Lookup returns the named store, or nil when it does not exist.
func (s *Storage) Lookup(_ context.Context, name string) (ports.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(name)
	if err != nil || !ok {
		return nil, err
	}
	return &Cache{name: name, storage: s}, nil
}

// Keys returns the store names in creation order.
func (s *Storage) Keys(_ context.Context) ([]string, error) {
	metas, err := s.metas()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(metas))
	for i, m := range metas {
		names[i] = m.name
	}
	return names, nil
}

// Delete removes the named store with all of its entries.
func (s *Storage) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(name)
	if err != nil || !ok {
		return false, err
	}

	batch := new(leveldb.Batch)
	batch.Delete([]byte(storePrefix + name))

	it := s.db.NewIterator(util.BytesPrefix(entryKeyPrefix(name)), nil)
	for it.Next() {
		batch.Delete(slices.Clone(it.Key()))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", name)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", name)
	}
	return true, nil
}

// Match looks req up in every store in creation order.
func (s *Storage) Match(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if !req.IsGet() {
		return nil, nil
	}

	names, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		c := &Cache{name: name, storage: s}
		resp, err := c.Match(ctx, req)
		if err != nil || resp != nil {
			return resp, err
		}
	}
	return nil, nil
}

// Close releases the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Cache implements ports.Cache for one named store.
type Cache struct {
	name    string
	storage *Storage
}

// Name returns the store name.
func (c *Cache) Name() string {
	return c.name
}

// Match returns the stored response for req, or nil on a miss.
func (c *Cache) Match(_ context.Context, req *domain.Request) (*domain.Response, error) {
	if !req.IsGet() {
		return nil, nil
	}

	b, err := c.storage.db.Get(entryKey(c.name, req.URL), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", c.name)
	}

	var rec record
	if err := decodeGob(b, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", c.name)
	}
	if rec.URL != req.URL {
		return nil, nil
	}

	header := rec.Header
	if header == nil {
		header = make(http.Header)
	}
	return &domain.Response{Status: rec.Status, Header: header, Body: rec.Body}, nil
}

// Put stores resp for req. Writes to a store that was deleted are dropped.
func (c *Cache) Put(ctx context.Context, req *domain.Request, resp *domain.Response) error {
	return c.PutAll(ctx, []domain.CacheEntry{{URL: req.URL, Response: resp}})
}

// PutAll stores every entry in a single atomic batch.
func (c *Cache) PutAll(_ context.Context, entries []domain.CacheEntry) error {
	batch := new(leveldb.Batch)
	for _, e := range entries {
		b, err := encodeGob(record{
			URL:    e.URL,
			Status: e.Response.Status,
			Header: e.Response.Header,
			Body:   e.Response.Body,
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "url", e.URL)
		}
		batch.Put(entryKey(c.name, e.URL), b)
	}

	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	ok, err := c.storage.exists(c.name)
	if err != nil || !ok {
		return err
	}
	if err := c.storage.db.Write(batch, nil); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", c.name)
	}
	return nil
}

// Keys returns the URLs held by the store in sorted order.
func (c *Cache) Keys(_ context.Context) ([]string, error) {
	it := c.storage.db.NewIterator(util.BytesPrefix(entryKeyPrefix(c.name)), nil)
	defer it.Release()

	var urls []string
	for it.Next() {
		var rec record
		if err := decodeGob(it.Value(), &rec); err != nil {
			continue
		}
		urls = append(urls, rec.URL)
	}
	if err := it.Error(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "store", c.name)
	}

	slices.Sort(urls)
	return urls, nil
}

func entryKeyPrefix(name string) []byte {
	return []byte(entryPrefix + name + "\x00")
}

func entryKey(name, url string) []byte {
	return append(entryKeyPrefix(name), strconv.FormatUint(xxhash.Sum64String(url), 16)...)
}

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(b []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}
