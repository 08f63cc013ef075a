package ports

import "time"

// StepReporter presents pipeline progress.
// It decouples span collection from presentation.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type StepReporter interface {
	// OnStepStart is called when a step begins.
	// spanID: unique identifier for this step
	// parentID: spanID of the enclosing step (empty if root)
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepComplete is called when a step finishes.
	// err: nil if successful, error otherwise
	OnStepComplete(spanID string, endTime time.Time, err error)
}
