package domain

// WorkerState is the lifecycle position of a cache worker.
type WorkerState uint8

const (
	// WorkerParsed is a worker that has not started installing.
	WorkerParsed WorkerState = iota
	// WorkerInstalling is pre-warming its static store.
	WorkerInstalling
	// WorkerInstalled is installed and waiting to take control.
	WorkerInstalled
	// WorkerActivating is purging stale stores.
	WorkerActivating
	// WorkerActivated serves fetch events.
	WorkerActivated
	// WorkerRedundant failed to install or was replaced by a newer worker.
	WorkerRedundant
)

// String returns the lowercase state name.
func (s WorkerState) String() string {
	switch s {
	case WorkerParsed:
		return "parsed"
	case WorkerInstalling:
		return "installing"
	case WorkerInstalled:
		return "installed"
	case WorkerActivating:
		return "activating"
	case WorkerActivated:
		return "activated"
	case WorkerRedundant:
		return "redundant"
	default:
		return "unknown"
	}
}

// MessageSkipWaiting asks a waiting worker to activate immediately.
const MessageSkipWaiting = "SKIP_WAITING"

// Message is a control message posted to a worker.
type Message struct {
	Type string `json:"type"`
}
