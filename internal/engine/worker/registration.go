package worker

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
)

// Registration drives workers through their lifecycle for one scope. At most
// one worker is active and at most one is waiting at any time. A waiting
// worker is promoted once it receives SKIP_WAITING or once no client is
// attached to the active worker.
type Registration struct {
	logger ports.Logger

	mu      sync.Mutex
	active  *Worker
	waiting *Worker
	clients int
}

// NewRegistration creates an empty registration.
func NewRegistration(logger ports.Logger) *Registration {
	return &Registration{logger: logger}
}

// Register installs w. A failed install marks w redundant and leaves the
// registration unchanged. A successful install activates w immediately when
// there is no active worker or no attached client; otherwise w waits.
func (r *Registration) Register(ctx context.Context, w *Worker) error {
	w.setState(domain.WorkerInstalling)
	if err := w.Install(ctx); err != nil {
		w.setState(domain.WorkerRedundant)
		return err
	}
	w.setState(domain.WorkerInstalled)

	r.mu.Lock()
	if r.waiting != nil {
		r.waiting.setState(domain.WorkerRedundant)
	}
	r.waiting = w
	immediate := r.active == nil || r.clients == 0
	r.mu.Unlock()

	if immediate {
		return r.promote(ctx, w)
	}

	r.logger.Info(fmt.Sprintf("worker %s installed and waiting", w.Version()))
	return nil
}

// promote activates w if it is still the waiting worker.
func (r *Registration) promote(ctx context.Context, w *Worker) error {
	r.mu.Lock()
	if r.waiting != w {
		r.mu.Unlock()
		return nil
	}
	r.waiting = nil
	previous := r.active
	r.active = w
	w.setState(domain.WorkerActivating)
	r.mu.Unlock()

	if previous != nil {
		previous.setState(domain.WorkerRedundant)
	}

	err := w.Activate(ctx)
	w.setState(domain.WorkerActivated)
	if err != nil {
		r.logger.Error(err)
		return err
	}

	r.logger.Info(fmt.Sprintf("worker %s activated", w.Version()))
	return nil
}

// Active returns the active worker, or nil.
func (r *Registration) Active() *Worker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Waiting returns the installed worker waiting to activate, or nil.
func (r *Registration) Waiting() *Worker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waiting
}

// Connect attaches a client to the active worker. The returned release
// detaches it; releasing the last client promotes a waiting worker.
func (r *Registration) Connect() (release func(ctx context.Context) error) {
	r.mu.Lock()
	r.clients++
	r.mu.Unlock()

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			r.mu.Lock()
			r.clients--
			next := r.waiting
			idle := r.clients == 0
			r.mu.Unlock()

			if idle && next != nil {
				err = r.promote(ctx, next)
			}
		})
		return err
	}
}

// PostMessage delivers msg to the waiting worker, or to the active worker
// when none is waiting. It reports whether the message was recognized.
func (r *Registration) PostMessage(ctx context.Context, msg domain.Message) (bool, error) {
	r.mu.Lock()
	target := r.waiting
	if target == nil {
		target = r.active
	}
	r.mu.Unlock()

	if target == nil || !target.Message(msg) {
		return false, nil
	}
	return true, r.promote(ctx, target)
}

// Fetch routes req to the active worker once it has finished activating.
func (r *Registration) Fetch(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	w := r.Active()
	if w == nil {
		return nil, domain.ErrWorkerNotActive
	}

	select {
	case <-w.Activated():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return w.Fetch(ctx, req)
}
