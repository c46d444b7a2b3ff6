package notify

import (
	"context"
	"errors"
	"mentorapp/internal/metrics"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"mentorapp/internal/repository"
	"sync"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSends bounds the number of in-flight requests to the push provider.
const maxConcurrentSends = 10

// Sender hands a message to the push provider. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Dispatcher writes the in-app notification feed and sends push messages to registered devices.
type Dispatcher struct {
	store   repository.NotificationRepository
	sender  Sender
	timeout time.Duration
	now     func() time.Time

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A nil sender disables push delivery; the feed is still written.
func NewDispatcher(store repository.NotificationRepository, sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{store: store, sender: sender, timeout: timeout, now: time.Now}
}

// Default is the Dispatcher used by the route handlers. It is set by the server entrypoint.
var Default *Dispatcher

// Send pushes a message to the device registered by userID.
func (d *Dispatcher) Send(ctx context.Context, userID, title, body string, data map[string]string) error {
	token, err := d.store.GetPushToken(ctx, userID)
	if err != nil {
		return err
	}
	if d.sender == nil {
		return nil
	}

	_, err = d.sender.Send(ctx, &messaging.Message{
		Token: token.Token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		metrics.PushSends.WithLabelValues("error").Inc()
		return err
	}
	metrics.PushSends.WithLabelValues("ok").Inc()
	return nil
}

// SendMany pushes the same message to every user in userIDs and returns how many were delivered to
// the provider. Users without a registered device are skipped; other failures are logged.
func (d *Dispatcher) SendMany(ctx context.Context, userIDs []string, title, body string, data map[string]string) int {
	var mu sync.Mutex
	sent := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			err := d.Send(ctx, userID, title, body, data)
			switch {
			case err == nil:
				mu.Lock()
				sent++
				mu.Unlock()
			case errors.Is(err, qerrors.PushTokenNotFoundError):
				metrics.PushSends.WithLabelValues("no_token").Inc()
			default:
				glog.Warningf("failed to push notification to %s: %v", userID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return sent
}

// Broadcast writes a feed entry for every recipient in one batch and then pushes to their devices
// in the background. Only the feed write can fail the call.
func (d *Dispatcher) Broadcast(ctx context.Context, userIDs []string, t models.NotificationType, title, message string) ([]*models.Notification, error) {
	if t == "" {
		t = models.NotificationGeneral
	}

	now := d.now()
	notifications := make([]*models.Notification, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))
	for _, userID := range userIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		notifications = append(notifications, &models.Notification{
			UserID:    userID,
			Type:      t,
			Title:     title,
			Message:   message,
			CreatedAt: now,
		})
	}

	if err := d.store.CreateNotifications(ctx, notifications); err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(notifications))
	for _, n := range notifications {
		recipients = append(recipients, n.UserID)
	}
	d.detach(func(ctx context.Context) {
		d.SendMany(ctx, recipients, title, message, map[string]string{"tipo": string(t)})
	})

	return notifications, nil
}

// Notify is Broadcast without a caller: both the feed write and the pushes run detached and their
// failures are only logged.
func (d *Dispatcher) Notify(userIDs []string, t models.NotificationType, title, message string) {
	if d == nil {
		return
	}
	d.detach(func(ctx context.Context) {
		if _, err := d.Broadcast(ctx, userIDs, t, title, message); err != nil {
			glog.Warningf("failed to notify %v: %v", userIDs, err)
		}
	})
}

// Wait blocks until every detached delivery has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

func (d *Dispatcher) detach(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		fn(ctx)
	}()
}

// Notify sends through Default.
func Notify(userIDs []string, t models.NotificationType, title, message string) {
	Default.Notify(userIDs, t, title, message)
}

// Broadcast writes through Default. It fails when no dispatcher is configured.
func Broadcast(ctx context.Context, userIDs []string, t models.NotificationType, title, message string) ([]*models.Notification, error) {
	if Default == nil {
		return nil, errors.New("notification dispatcher is not configured")
	}
	return Default.Broadcast(ctx, userIDs, t, title, message)
}
