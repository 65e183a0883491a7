// Package rtobservability forwards handler failures to an external
// error-tracking service. It is wired in as an optional sink: a tree
// works correctly with no reporter installed; once one is installed with
// SetReporter, the dispatcher forwards every handler panic or returned
// error to it, alongside firing the HandlingError event.
package rtobservability

import (
	"sync"
	"time"
)

// ErrorContext carries the situational detail worth attaching to a
// reported error: which component and event were involved, and when.
type ErrorContext struct {
	ComponentPath string
	EventName     string
	Timestamp     time.Time
	Tags          map[string]string
	Extra         map[string]interface{}
}

// Reporter is the sink the dispatcher forwards handler failures to. Flush should be
// called before process exit so buffered reports aren't lost.
type Reporter interface {
	ReportError(err error, ctx ErrorContext)
	Flush(timeout time.Duration) bool
}

var (
	mu      sync.RWMutex
	current Reporter
)

// SetReporter installs the process-wide reporter the dispatcher forwards
// handler failures to. Pass nil to disable forwarding.
func SetReporter(r Reporter) {
	mu.Lock()
	current = r
	mu.Unlock()
}

// Current returns the installed reporter, or nil if none is set.
func Current() Reporter {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
