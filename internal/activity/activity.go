package activity

import (
	"context"
	"mentorapp/internal/metrics"
	"mentorapp/internal/models"
	"mentorapp/internal/repository"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Recorder appends activity entries without making the caller wait for, or fail on, the write.
type Recorder struct {
	store   repository.ActivityRepository
	timeout time.Duration
	now     func() time.Time

	wg sync.WaitGroup
}

func NewRecorder(store repository.ActivityRepository, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Recorder{store: store, timeout: timeout, now: time.Now}
}

// Default is the Recorder used by the route handlers. It is set by the server entrypoint.
var Default *Recorder

// Record appends an activity on a detached goroutine with its own deadline. Failures are logged
// and counted, never returned.
func (rec *Recorder) Record(userID, description, action string) {
	if rec == nil || rec.store == nil {
		return
	}

	a := &models.Activity{
		UserID:      userID,
		Description: description,
		Action:      action,
		CreatedAt:   rec.now(),
	}

	rec.wg.Add(1)
	go func() {
		defer rec.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), rec.timeout)
		defer cancel()

		if err := rec.store.AddActivity(ctx, a); err != nil {
			metrics.ActivityFailures.Inc()
			glog.Warningf("failed to record activity %q for %s: %v", action, userID, err)
		}
	}()
}

// Wait blocks until every pending write has finished.
func (rec *Recorder) Wait() {
	if rec == nil {
		return
	}
	rec.wg.Wait()
}

// Record appends an activity through Default.
func Record(userID, description, action string) {
	Default.Record(userID, description, action)
}
