package crashtracker

import (
	"context"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"
)

type dryRunClient struct{}

var _ CrashTrackerClient = (*dryRunClient)(nil)

func NewDryRunClient() *dryRunClient {
	return &dryRunClient{}
}

func (c *dryRunClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	log.Ctx(ctx).Errorf("[DRY_RUN Crash Reporter] %+v", wrapWithMessage(err, msg))
}

func (c *dryRunClient) LogAndReportMessages(ctx context.Context, msg string) {
	log.Ctx(ctx).Infof("[DRY_RUN Crash Reporter] %s", msg)
}

func (c *dryRunClient) FlushEvents(time.Duration) bool {
	return false
}

func (c *dryRunClient) Recover() {}
