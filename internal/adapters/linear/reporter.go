// Package linear prints pipeline steps as chronological, line-oriented output.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/stamp/internal/ui/output"
	"go.trai.ch/stamp/internal/ui/style"
)

// Reporter implements ports.StepReporter. Nested steps are labelled with
// their full path, e.g. "[build/generate]".
type Reporter struct {
	w      io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*step // spanID -> step
}

type step struct {
	label     string
	startTime time.Time
}

// NewReporter creates a Reporter writing to w, or stderr when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{
		w:      w,
		output: output.New(w),
		steps:  make(map[string]*step),
	}
}

// OnStepStart prints a start line for the step.
func (r *Reporter) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := name
	if parent, ok := r.steps[parentID]; ok {
		label = parent.label + "/" + name
	}
	r.steps[spanID] = &step{label: label, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", label)).Faint().String()
	_, _ = fmt.Fprintf(r.w, "%s Starting...\n", prefix)
}

// OnStepComplete prints the outcome and duration of the step.
func (r *Reporter) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)

	duration := endTime.Sub(s.startTime)
	prefix := fmt.Sprintf("[%s]", s.label)

	if err != nil {
		symbol := r.output.String(style.Failed.Glyph).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := r.output.String(style.Done.Glyph).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v\n", prefix, symbol, duration)
}
