package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mentorapp/internal/models"
)

type fakeStore struct {
	mu         sync.Mutex
	activities []*models.Activity
	err        error
	deadline   bool
}

func (s *fakeStore) AddActivity(ctx context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, s.deadline = ctx.Deadline()
	if s.err != nil {
		return s.err
	}
	s.activities = append(s.activities, a)
	return nil
}

func (s *fakeStore) ListActivities(context.Context, string, int) ([]*models.Activity, error) {
	return nil, nil
}

func TestRecordWritesActivity(t *testing.T) {
	store := &fakeStore{}
	rec := NewRecorder(store, time.Second)

	rec.Record("user-1", "Fez login", models.ActionLogin)
	rec.Wait()

	if len(store.activities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(store.activities))
	}
	a := store.activities[0]
	if a.UserID != "user-1" || a.Action != models.ActionLogin || a.CreatedAt.IsZero() {
		t.Errorf("Unexpected activity %+v", a)
	}
	if !store.deadline {
		t.Errorf("Expected the write to run with a deadline")
	}
}

func TestRecordAbsorbsFailures(t *testing.T) {
	store := &fakeStore{err: errors.New("unavailable")}
	rec := NewRecorder(store, time.Second)

	// Must not panic or block.
	rec.Record("user-1", "Fez login", models.ActionLogin)
	rec.Wait()

	if len(store.activities) != 0 {
		t.Errorf("Expected no activity to be stored, got %d", len(store.activities))
	}
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	rec.Record("user-1", "x", "y")
	rec.Wait()
}
