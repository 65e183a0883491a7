package rtobservability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryOption configures a SentryReporter.
type SentryOption func(*sentry.ClientOptions)

// WithEnvironment sets the Sentry environment tag (e.g. "staging",
// "production").
func WithEnvironment(env string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithRelease sets the Sentry release identifier.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// SentryReporter forwards reported errors to Sentry via a dedicated hub,
// so that reports from one tree don't interleave with any other Sentry
// usage elsewhere in the same process.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter initializes a Sentry client with dsn and opts and
// returns a Reporter wrapping it.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}

	client, err := sentry.NewClient(clientOpts)
	if err != nil {
		return nil, err
	}
	hub := sentry.NewHub(client, sentry.NewScope())
	return &SentryReporter{hub: hub}, nil
}

// ReportError sends err to Sentry, tagging it with ctx's component path
// and event name.
func (s *SentryReporter) ReportError(err error, ctx ErrorContext) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component_path", ctx.ComponentPath)
		scope.SetTag("event", ctx.EventName)
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		s.hub.CaptureException(err)
	})
}

// Flush blocks until every buffered event has been sent, or timeout
// elapses, reporting whether it flushed in time.
func (s *SentryReporter) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}

var _ Reporter = (*SentryReporter)(nil)
