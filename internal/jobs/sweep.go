package jobs

import (
	"context"
	"mentorapp/internal/models"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Sweeper refreshes the status of every active mentorship session.
type Sweeper interface {
	Sweep(ctx context.Context) (*models.SweepResult, error)
}

// StartSessionSweep runs the sweep on a cron schedule until ctx is done. An empty schedule disables
// it, in which case statuses are only refreshed when sessions are read or the sweep route is called.
func StartSessionSweep(ctx context.Context, schedule string, timeout time.Duration, sweeper Sweeper) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		result, err := sweeper.Sweep(runCtx)
		if err != nil {
			glog.Warningf("session sweep failed: %v", err)
			return
		}
		if result.Updated > 0 {
			glog.Infof("session sweep updated %d of %d sessions", result.Updated, result.Checked)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid session sweep schedule: %s", schedule)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()

	glog.Infof("session sweep scheduled: %s", schedule)
	return c, nil
}
