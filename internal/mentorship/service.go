package mentorship

import (
	"context"
	"errors"
	"mentorapp/internal/metrics"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"mentorapp/internal/repository"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Service runs the mentorship session lifecycle against the store.
//
// Transitions of sessions that share a mentor are serialized within this process, so two requests
// here cannot both move the same mentor into em_curso. Every status write is conditional on the
// stored status, so a session that reached a terminal status is never moved out of it. Separate
// processes sharing the store can still race between the conflict query and the status write of
// two different sessions.
type Service struct {
	store    repository.Store
	duration time.Duration
	loc      *time.Location
	now      func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewService(store repository.Store, duration time.Duration, loc *time.Location) *Service {
	if duration <= 0 {
		duration = 30 * time.Minute
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:    store,
		duration: duration,
		loc:      loc,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Default is the Service used by the route handlers. It is set by the server entrypoint.
var Default *Service

// Schedule creates a pendente session between userID and the mentor in req.
func (s *Service) Schedule(ctx context.Context, userID string, req *models.ScheduleSessionRequest) (*models.Session, error) {
	now := s.now()
	start, end, err := ScheduleWindow(req.Date, req.Time, s.loc, s.duration, now)
	if err != nil {
		return nil, err
	}

	mentor, err := s.store.GetUserByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role != models.RoleMentor {
		return nil, qerrors.NotAMentorError
	}
	if mentor.ID == userID {
		return nil, qerrors.New(qerrors.BadRequest, "não pode agendar uma sessão consigo próprio")
	}

	session := &models.Session{
		UserID:    userID,
		MentorID:  mentor.ID,
		Date:      req.Date,
		Time:      req.Time,
		Category:  req.Category,
		Status:    models.StatusPending,
		Start:     start,
		End:       end,
		CreatedAt: now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session and brings its status up to date.
func (s *Service) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Refresh(ctx, session)
}

// Refresh evaluates the time-based rules for session and persists any change. session is updated in
// place and returned.
//
// The stored session is read again under the mentor's lock, and the write only applies if the stored
// status is still the one the rules were evaluated against. A session moved meanwhile by another
// request is returned as stored.
func (s *Service) Refresh(ctx context.Context, session *models.Session) (*models.Session, error) {
	if _, err := s.refresh(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// refresh is Refresh, also reporting whether this call changed the stored status.
func (s *Service) refresh(ctx context.Context, session *models.Session) (bool, error) {
	if session.Status.IsTerminal() {
		return false, nil
	}

	unlock := s.lockMentor(session.MentorID)
	defer unlock()

	if err := s.reload(ctx, session); err != nil {
		return false, err
	}
	if session.Status.IsTerminal() {
		return false, nil
	}

	t, err := NextStatus(ctx, s.now(), session, s.store.HasInProgressConflict)
	if err != nil {
		return false, err
	}
	if !t.Changed() {
		return false, nil
	}

	err = s.store.UpdateSessionStatus(ctx, session.ID, t.From, t.To, t.Reason)
	if errors.Is(err, qerrors.StaleSessionError) {
		return false, s.reload(ctx, session)
	}
	if err != nil {
		return false, err
	}
	metrics.SessionTransitions.WithLabelValues(string(t.From), string(t.To)).Inc()

	session.Status = t.To
	if t.Reason != "" {
		session.Reason = t.Reason
	}
	return true, nil
}

// RefreshAll refreshes each session in order. Sessions starting earlier are evaluated first so
// that, between overlapping sessions of a mentor, the earlier one wins.
func (s *Service) RefreshAll(ctx context.Context, sessions []*models.Session) ([]*models.Session, error) {
	for _, session := range sessions {
		if _, err := s.refresh(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Sweep refreshes every session that is not in a terminal status. A failure on one session is
// logged and does not stop the sweep.
func (s *Service) Sweep(ctx context.Context) (*models.SweepResult, error) {
	sessions, err := s.store.ListActiveSessions(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.SweepResult{}
	for _, session := range sessions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Checked++
		changed, err := s.refresh(ctx, session)
		if err != nil {
			glog.Warningf("failed to refresh session %s: %v", session.ID, err)
			continue
		}
		if changed {
			result.Updated++
		}
	}
	return result, nil
}

// Accept moves a pendente session to aceita. Only the session's mentor or an admin may accept.
func (s *Service) Accept(ctx context.Context, id string, actorID string, admin bool) (*models.Session, error) {
	return s.decide(ctx, id, actorID, admin, models.StatusAccepted, "")
}

// Reject moves a pendente session to rejeitada with a reason.
func (s *Service) Reject(ctx context.Context, id string, actorID string, admin bool, reason string) (*models.Session, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, qerrors.New(qerrors.BadRequest, "o motivo é obrigatório")
	}
	return s.decide(ctx, id, actorID, admin, models.StatusRejected, reason)
}

// Cancel moves a pendente or aceita session to cancelada. Either participant or an admin may cancel.
func (s *Service) Cancel(ctx context.Context, id string, actorID string, admin bool, reason string) (*models.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && !session.IsParticipant(actorID) {
		return nil, qerrors.NotSessionParticipantError
	}

	return s.setStatus(ctx, session, models.StatusCancelled, reason, models.StatusPending, models.StatusAccepted)
}

// Rate appends a rating to a session, whatever its status. Only participants may rate.
func (s *Service) Rate(ctx context.Context, id string, raterID string, req *models.RateSessionRequest) (*models.Session, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, qerrors.InvalidRatingError
	}

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(raterID) {
		return nil, qerrors.NotSessionParticipantError
	}

	rating := &models.Rating{
		Score:     req.Score,
		Comment:   req.Comment,
		RaterID:   raterID,
		CreatedAt: s.now(),
	}
	if err := s.store.RateSession(ctx, id, rating); err != nil {
		return nil, err
	}
	session.Rating = rating
	return session, nil
}

// decide applies a mentor's answer to a pendente session.
func (s *Service) decide(ctx context.Context, id string, actorID string, admin bool, to models.SessionStatus, reason string) (*models.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && session.MentorID != actorID {
		return nil, qerrors.NotSessionParticipantError
	}

	return s.setStatus(ctx, session, to, reason, models.StatusPending)
}

// setStatus moves session to `to` if its stored status is one of from. Fails with
// InvalidTransitionError otherwise, including when another request changed it first.
func (s *Service) setStatus(ctx context.Context, session *models.Session, to models.SessionStatus, reason string, from ...models.SessionStatus) (*models.Session, error) {
	unlock := s.lockMentor(session.MentorID)
	defer unlock()

	if err := s.reload(ctx, session); err != nil {
		return nil, err
	}
	allowed := false
	for _, f := range from {
		if session.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, qerrors.InvalidTransitionError
	}

	err := s.store.UpdateSessionStatus(ctx, session.ID, session.Status, to, reason)
	if errors.Is(err, qerrors.StaleSessionError) {
		return nil, qerrors.InvalidTransitionError
	}
	if err != nil {
		return nil, err
	}
	metrics.SessionTransitions.WithLabelValues(string(session.Status), string(to)).Inc()

	session.Status = to
	if reason != "" {
		session.Reason = reason
	}
	return session, nil
}

// reload replaces session with its stored copy.
func (s *Service) reload(ctx context.Context, session *models.Session) error {
	current, err := s.store.GetSession(ctx, session.ID)
	if err != nil {
		return err
	}
	*session = *current
	return nil
}

func (s *Service) lockMentor(mentorID string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[mentorID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[mentorID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
