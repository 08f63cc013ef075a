package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tidwall/gjson"
	"go.trai.ch/stamp/internal/adapters/cachestore" //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/httpserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/network"    //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/stamp/internal/engine/worker"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is how often the proxy checks the origin for a new version.
const DefaultPollInterval = time.Minute

// ServeOptions configures Serve.
type ServeOptions struct {
	ConfigPath string
	Addr       string
}

// Serve previews the build directory until ctx is canceled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	project, err := a.project(opts.ConfigPath)
	if err != nil {
		return err
	}

	ln, err := httpserver.Listen(opts.Addr)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("serving %s on http://%s", project.BuildDir, ln.Addr()))
	return httpserver.Serve(ctx, ln, httpserver.NewPreview(project))
}

// ProxyOptions configures Proxy.
type ProxyOptions struct {
	ConfigPath string
	Addr       string
	Origin     string
	// Interval between version checks. Zero selects DefaultPollInterval.
	Interval time.Duration
	// SkipWaiting activates a newly installed worker without waiting for
	// in-flight requests of the previous one.
	SkipWaiting bool
	// Clock drives the poll loop. Nil uses the wall clock.
	Clock clockwork.Clock
}

// Proxy runs the cache worker as an edge proxy in front of origin. A worker
// is registered for every version the origin publishes.
func (a *App) Proxy(ctx context.Context, opts ProxyOptions) error {
	project, err := a.project(opts.ConfigPath)
	if err != nil {
		return err
	}

	fetcher, err := network.NewFetcher(opts.Origin, nil)
	if err != nil {
		return err
	}

	storage, err := cachestore.Open(project.CacheDir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			a.logger.Error(cerr)
		}
	}()

	ln, err := httpserver.Listen(opts.Addr)
	if err != nil {
		return err
	}

	registration := worker.NewRegistration(a.logger)
	poller := newVersionPoller(registration, storage, fetcher, a.logger, a.tracer, opts)
	poller.metadataURL = "/" + filepath.Base(project.MetadataPath())

	a.logger.Info(fmt.Sprintf("proxying %s on http://%s", opts.Origin, ln.Addr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Serve(gctx, ln, httpserver.NewProxy(registration, a.logger))
	})
	g.Go(func() error {
		poller.run(gctx)
		return nil
	})
	return g.Wait()
}

// versionPoller registers a new worker whenever the origin reports a new version.
type versionPoller struct {
	registration *worker.Registration
	storage      ports.CacheStorage
	network      ports.Network
	logger       ports.Logger
	tracer       ports.Tracer
	clock        clockwork.Clock
	interval     time.Duration
	skipWaiting  bool
	metadataURL  string
	current      string
}

func newVersionPoller(
	registration *worker.Registration,
	storage ports.CacheStorage,
	net ports.Network,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ProxyOptions,
) *versionPoller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &versionPoller{
		registration: registration,
		storage:      storage,
		network:      net,
		logger:       logger,
		tracer:       tracer,
		clock:        clock,
		interval:     interval,
		skipWaiting:  opts.SkipWaiting,
		metadataURL:  "/" + domain.MetadataFileName,
	}
}

func (p *versionPoller) run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error(err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}

// poll checks the origin once and registers a worker for a new version.
func (p *versionPoller) poll(ctx context.Context) error {
	v, err := p.originVersion(ctx)
	if err != nil {
		return err
	}
	if v == p.current {
		return nil
	}

	w := worker.New(v, p.storage, p.network, p.logger, p.tracer)
	if err := p.registration.Register(ctx, w); err != nil {
		return err
	}
	p.current = v

	if p.skipWaiting && p.registration.Waiting() == w {
		if _, err := p.registration.PostMessage(ctx, domain.Message{Type: domain.MessageSkipWaiting}); err != nil {
			return err
		}
	}
	return nil
}

func (p *versionPoller) originVersion(ctx context.Context) (string, error) {
	url := p.metadataURL
	req := domain.NewRequest(http.MethodGet, url)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.network.Fetch(ctx, req)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		err := zerr.Wrap(domain.ErrOriginUnreachable, "version check failed")
		return "", zerr.With(zerr.With(err, "url", url), "status", resp.Status)
	}

	v := gjson.GetBytes(resp.Body, "version")
	if v.Type != gjson.String || !domain.ValidateVersion(v.String()) {
		err := zerr.Wrap(domain.ErrOriginUnreachable, "version document has no usable version")
		return "", zerr.With(err, "url", url)
	}
	return v.String(), nil
}
