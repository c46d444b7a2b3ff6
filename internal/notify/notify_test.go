package notify

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"

	"firebase.google.com/go/messaging"
)

type fakeStore struct {
	mu            sync.Mutex
	tokens        map[string]string
	notifications []*models.Notification
	batches       int
}

func (s *fakeStore) SetPushToken(context.Context, string, string) error { return nil }
func (s *fakeStore) DeletePushToken(context.Context, string) error      { return nil }

func (s *fakeStore) GetPushToken(_ context.Context, userID string) (*models.PushToken, error) {
	token, ok := s.tokens[userID]
	if !ok {
		return nil, qerrors.PushTokenNotFoundError
	}
	return &models.PushToken{UserID: userID, Token: token}, nil
}

func (s *fakeStore) CreateNotifications(_ context.Context, ns []*models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	s.notifications = append(s.notifications, ns...)
	return nil
}

func (s *fakeStore) ListNotifications(context.Context, string) ([]*models.Notification, error) {
	return nil, nil
}
func (s *fakeStore) MarkNotificationRead(context.Context, string, string) error { return nil }
func (s *fakeStore) MarkAllNotificationsRead(context.Context, string) (int, error) {
	return 0, nil
}

type fakeSender struct {
	mu     sync.Mutex
	tokens []string
	fail   map[string]bool
}

func (s *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[m.Token] {
		return "", errors.New("provider error")
	}
	s.tokens = append(s.tokens, m.Token)
	return "msg-" + m.Token, nil
}

func TestSendWithoutToken(t *testing.T) {
	d := NewDispatcher(&fakeStore{tokens: map[string]string{}}, &fakeSender{}, time.Second)
	err := d.Send(context.Background(), "user-1", "t", "b", nil)
	if !errors.Is(err, qerrors.PushTokenNotFoundError) {
		t.Errorf("Expected PushTokenNotFoundError, got %v", err)
	}
}

func TestSendManySkipsFailures(t *testing.T) {
	store := &fakeStore{tokens: map[string]string{"a": "tok-a", "b": "tok-b", "c": "tok-c"}}
	sender := &fakeSender{fail: map[string]bool{"tok-b": true}}
	d := NewDispatcher(store, sender, time.Second)

	sent := d.SendMany(context.Background(), []string{"a", "b", "c", "d"}, "t", "b", nil)
	if sent != 2 {
		t.Errorf("Expected 2 pushes to be delivered, got %d", sent)
	}

	sort.Strings(sender.tokens)
	if len(sender.tokens) != 2 || sender.tokens[0] != "tok-a" || sender.tokens[1] != "tok-c" {
		t.Errorf("Expected pushes to tok-a and tok-c, got %v", sender.tokens)
	}
}

func TestBroadcastWritesOneBatch(t *testing.T) {
	store := &fakeStore{tokens: map[string]string{"a": "tok-a"}}
	sender := &fakeSender{}
	d := NewDispatcher(store, sender, time.Second)

	ns, err := d.Broadcast(context.Background(), []string{"a", "b", "a"}, "", "Olá", "Bem-vindo")
	if err != nil {
		t.Fatalf("broadcast error: %v", err)
	}
	d.Wait()

	if len(ns) != 2 {
		t.Errorf("Expected duplicate recipients to be collapsed, got %d notifications", len(ns))
	}
	if store.batches != 1 {
		t.Errorf("Expected 1 batch write, got %d", store.batches)
	}
	for _, n := range store.notifications {
		if n.Type != models.NotificationGeneral || n.Read {
			t.Errorf("Unexpected notification %+v", n)
		}
	}
	if len(sender.tokens) != 1 {
		t.Errorf("Expected 1 push, got %d", len(sender.tokens))
	}
}

func TestNotifyWithoutSender(t *testing.T) {
	store := &fakeStore{tokens: map[string]string{"a": "tok-a"}}
	d := NewDispatcher(store, nil, time.Second)

	d.Notify([]string{"a"}, models.NotificationPromotion, "Promoção", "Aprovada")
	d.Wait()

	if len(store.notifications) != 1 {
		t.Errorf("Expected the feed entry to be written without a push provider, got %d", len(store.notifications))
	}
}
