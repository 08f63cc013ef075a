package linear_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/stamp/internal/adapters/linear"
)

func TestReporter_Lifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := linear.NewReporter(&buf)
	start := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	r.OnStepStart("a", "", "build", start)
	r.OnStepStart("b", "a", "generate", start)
	r.OnStepComplete("b", start.Add(120*time.Millisecond), nil)
	r.OnStepStart("c", "a", "fallback", start.Add(120*time.Millisecond))
	r.OnStepComplete("c", start.Add(125*time.Millisecond), errors.New("entry document missing"))
	r.OnStepComplete("a", start.Add(130*time.Millisecond), errors.New("build failed"))

	goldie.New(t).Assert(t, "lifecycle", buf.Bytes())
}

func TestReporter_UnknownSpanIgnored(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewReporter(&buf)

	r.OnStepComplete("missing", time.Now(), nil)

	assert.Empty(t, buf.String())
}

func TestReporter_Concurrent(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := linear.NewReporter(&buf)
	start := time.Now()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.OnStepStart(id, "", "step-"+id, start)
			r.OnStepComplete(id, start.Add(time.Millisecond), nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("Completed in 1ms")))
}
