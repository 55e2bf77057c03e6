package crashtracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stellar/go-stellar-sdk/support/log"
)

// sentryHub is the subset of *sentry.Hub used by sentryClient.
type sentryHub interface {
	CaptureException(exception error) *sentry.EventID
	CaptureMessage(message string) *sentry.EventID
	Flush(timeout time.Duration) bool
	Recover(err interface{}) *sentry.EventID
}

var _ sentryHub = (*sentry.Hub)(nil)

// sentryInit is swapped in tests.
var sentryInit = sentry.Init

type sentryClient struct {
	hub sentryHub
}

var _ CrashTrackerClient = (*sentryClient)(nil)

func NewSentryClient(sentryDSN, environment, gitCommit string) (*sentryClient, error) {
	err := sentryInit(sentry.ClientOptions{
		Dsn:         sentryDSN,
		Release:     gitCommit,
		Environment: environment,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up sentry: %w", err)
	}

	return &sentryClient{hub: sentry.CurrentHub()}, nil
}

// LogAndReportErrors logs err and sends it to Sentry. Canceled requests are not reported since the wallet owner
// simply went away.
func (s *sentryClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	if errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Warn("context canceled, not reporting error to sentry")
		return
	}

	err = wrapWithMessage(err, msg)
	log.Ctx(ctx).WithStack(err).Errorf("%+v", err)
	s.hub.CaptureException(err)
}

func (s *sentryClient) LogAndReportMessages(ctx context.Context, msg string) {
	log.Ctx(ctx).Info(msg)
	s.hub.CaptureMessage(msg)
}

func (s *sentryClient) FlushEvents(waitTime time.Duration) bool {
	return s.hub.Flush(waitTime)
}

// Recover must be deferred directly so that recover() sees the panic.
func (s *sentryClient) Recover() {
	if err := recover(); err != nil {
		s.hub.Recover(err)
	}
}
