// Package worker implements the runtime cache worker: install pre-warms the
// static store, fetch serves cache-first, activate purges stale stores, and a
// Registration moves workers through their lifecycle.
package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Worker is one versioned instance of the cache worker.
type Worker struct {
	version string
	static  string
	dynamic string

	storage ports.CacheStorage
	network ports.Network
	logger  ports.Logger
	tracer  ports.Tracer

	mu        sync.Mutex
	state     domain.WorkerState
	activated chan struct{}
	redundant chan struct{}
}

// New creates a worker for version. It starts in the parsed state.
func New(
	version string,
	storage ports.CacheStorage,
	network ports.Network,
	logger ports.Logger,
	tracer ports.Tracer,
) *Worker {
	return &Worker{
		version:   version,
		static:    domain.StaticStoreName(version),
		dynamic:   domain.DynamicStoreName(version),
		storage:   storage,
		network:   network,
		logger:    logger,
		tracer:    tracer,
		state:     domain.WorkerParsed,
		activated: make(chan struct{}),
		redundant: make(chan struct{}),
	}
}

// Version returns the cache version the worker was built with.
func (w *Worker) Version() string {
	return w.version
}

// StoreNames returns the static and dynamic store names owned by the worker.
func (w *Worker) StoreNames() (static, dynamic string) {
	return w.static, w.dynamic
}

// State returns the current lifecycle state.
func (w *Worker) State() domain.WorkerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Activated is closed once the worker has finished activating.
func (w *Worker) Activated() <-chan struct{} {
	return w.activated
}

// Redundant is closed once the worker failed to install or was replaced.
func (w *Worker) Redundant() <-chan struct{} {
	return w.redundant
}

func (w *Worker) setState(s domain.WorkerState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == s || w.state == domain.WorkerRedundant {
		return
	}
	w.state = s

	switch s {
	case domain.WorkerActivated:
		close(w.activated)
	case domain.WorkerRedundant:
		close(w.redundant)
	}
}

// Install fetches every precache URL and stores the responses in the static
// store, then creates the empty dynamic store. Nothing is written unless
// every fetch succeeded with a 2xx status.
func (w *Worker) Install(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "install")
	defer span.End()
	span.SetAttribute("store", w.static)

	entries := make([]domain.CacheEntry, len(domain.PrecacheURLs))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range domain.PrecacheURLs {
		g.Go(func() error {
			resp, err := w.network.Fetch(gctx, domain.NewRequest(http.MethodGet, url))
			if err != nil {
				return zerr.With(err, "url", url)
			}
			if !resp.OK() {
				err := zerr.New("precache response is not ok")
				err = zerr.With(err, "url", url)
				return zerr.With(err, "status", resp.Status)
			}
			entries[i] = domain.CacheEntry{URL: url, Response: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrInstallFailed, err)
	}

	cache, err := w.storage.Open(ctx, w.static)
	if err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrInstallFailed, err)
	}
	if err := cache.PutAll(ctx, entries); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrInstallFailed, err)
	}
	if _, err := w.storage.Open(ctx, w.dynamic); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrInstallFailed, err)
	}

	w.logger.Info(fmt.Sprintf("worker %s installed %d precache entries", w.version, len(entries)))
	return nil
}

// Activate deletes every store other than the worker's static and dynamic
// stores. Deletions run concurrently and all of them complete before
// Activate returns.
func (w *Worker) Activate(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "activate")
	defer span.End()

	names, err := w.storage.Keys(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		deleted []string
	)
	for _, name := range names {
		if name == w.static || name == w.dynamic {
			continue
		}
		g.Go(func() error {
			if _, err := w.storage.Delete(ctx, name); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to delete stale store"), "store", name)
			}
			mu.Lock()
			deleted = append(deleted, name)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	span.SetAttribute("deleted", len(deleted))
	if len(deleted) > 0 {
		w.logger.Info(fmt.Sprintf("worker %s purged %d stale store(s)", w.version, len(deleted)))
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Fetch serves req cache-first. On a miss the network is used and successful
// asset responses are copied into the dynamic store unless the worker is
// redundant. When the network fails a
// navigation is answered with the cached entry document; any other request
// gets no response and the network error.
func (w *Worker) Fetch(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	cached, err := w.storage.Match(ctx, req)
	if err != nil {
		w.logger.Warn(fmt.Sprintf("cache lookup failed for %s: %v", req.URL, err))
	} else if cached != nil {
		cached.Served = domain.ServedFromCache
		return cached, nil
	}

	resp, err := w.network.Fetch(ctx, req)
	if err != nil {
		if req.IsNavigation() {
			entry := domain.NewRequest(http.MethodGet, "/"+domain.EntryDocument)
			if doc, mErr := w.storage.Match(ctx, entry); mErr == nil && doc != nil {
				doc.Served = domain.ServedFromFallback
				return doc, nil
			}
		}
		return nil, err
	}

	resp.Served = domain.ServedFromNetwork
	if req.IsGet() && resp.OK() && domain.IsCacheableAsset(req.URL) && !w.isRedundant() {
		if err := w.putDynamic(ctx, req, resp.Clone()); err != nil {
			w.logger.Warn(fmt.Sprintf("failed to cache %s: %v", req.URL, err))
		}
	}

	return resp, nil
}

func (w *Worker) isRedundant() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == domain.WorkerRedundant
}

// putDynamic never creates the dynamic store. Once a newer worker purged it,
// late writes from this worker are dropped.
func (w *Worker) putDynamic(ctx context.Context, req *domain.Request, resp *domain.Response) error {
	cache, err := w.storage.Lookup(ctx, w.dynamic)
	if err != nil || cache == nil {
		return err
	}
	return cache.Put(ctx, req, resp)
}

// Message reports whether msg asks the worker to skip waiting. Every other
// message is ignored.
func (w *Worker) Message(msg domain.Message) bool {
	return msg.Type == domain.MessageSkipWaiting
}
