package mentorship

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"time"
)

// ConflictReason is recorded on a session cancelled because its mentor was already in another one.
const ConflictReason = "conflito de horário: o mentor já está noutra sessão em curso"

// ConflictFunc reports whether another session of the same mentor is in progress and ends after s
// starts.
type ConflictFunc func(ctx context.Context, s *models.Session) (bool, error)

// Transition is the outcome of evaluating a session at some instant.
type Transition struct {
	From   models.SessionStatus
	To     models.SessionStatus
	Reason string
}

func (t Transition) Changed() bool {
	return t.From != t.To
}

// NextStatus applies the time-based rules to s at now:
//
//	pendente,  now > start                          -> expirada
//	aceita,    start <= now < end, no conflict       -> em_curso
//	aceita,    start <= now < end, conflict          -> cancelada (with ConflictReason)
//	aceita or em_curso, now >= end                   -> finalizada
//
// Any other combination leaves the status unchanged. conflict is only called for the aceita case.
func NextStatus(ctx context.Context, now time.Time, s *models.Session, conflict ConflictFunc) (Transition, error) {
	t := Transition{From: s.Status, To: s.Status}

	switch s.Status {
	case models.StatusPending:
		if now.After(s.Start) {
			t.To = models.StatusExpired
		}
	case models.StatusAccepted:
		if !now.Before(s.End) {
			t.To = models.StatusFinished
			break
		}
		if now.Before(s.Start) {
			break
		}
		conflicting, err := conflict(ctx, s)
		if err != nil {
			return Transition{From: s.Status, To: s.Status}, err
		}
		if conflicting {
			t.To = models.StatusCancelled
			t.Reason = ConflictReason
		} else {
			t.To = models.StatusInProgress
		}
	case models.StatusInProgress:
		if !now.Before(s.End) {
			t.To = models.StatusFinished
		}
	}

	return t, nil
}

// ScheduleWindow turns a date (YYYY-MM-DD) and time (HH:MM) in loc into the session's start and end.
// The start must be strictly after now.
func ScheduleWindow(date, clock string, loc *time.Location, duration time.Duration, now time.Time) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, qerrors.InvalidScheduleError
	}
	if !start.After(now) {
		return time.Time{}, time.Time{}, qerrors.SessionInPastError
	}

	return start, start.Add(duration), nil
}
