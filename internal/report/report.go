// Package report forwards per-character failures to Sentry.
package report

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/game/entity"
	"github.com/Faultbox/charctl/internal/logger"
)

const flushTimeout = 2 * time.Second

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string

	beforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
}

// Reporter sends failures to Sentry when enabled. The zero value only logs.
type Reporter struct {
	enabled bool
}

// New initializes the global Sentry client. An empty DSN yields a reporter
// that only logs.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return &Reporter{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
		BeforeSend:       opts.beforeSend,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	logger.Info("failure reporting enabled", zap.String("environment", opts.Environment))
	return &Reporter{enabled: true}, nil
}

// Enabled reports whether failures reach Sentry.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Failure records that a character's update failed this frame.
func (r *Reporter) Failure(id entity.ID, frame uint64, err error) {
	if !r.Enabled() || err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("entity", id.String())
		scope.SetTag("frame", fmt.Sprint(frame))
	})
	hub.CaptureException(err)
}

// Recover reports a panic from the calling goroutine and re-panics. Use it
// deferred at the top of the main loop.
func (r *Reporter) Recover() {
	err := recover()
	if err == nil {
		return
	}
	if r.Enabled() {
		hub := sentry.CurrentHub().Clone()
		hub.Recover(err)
		hub.Flush(flushTimeout)
	}
	panic(err)
}

// Flush waits for queued events to be sent.
func (r *Reporter) Flush() {
	if r.Enabled() {
		sentry.Flush(flushTimeout)
	}
}
