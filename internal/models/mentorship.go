package models

import "time"

const (
	FirestoreSessionsCollection     = "mentorias"
	FirestoreChatMessagesCollection = "mensagens"
)

type SessionStatus string

const (
	StatusPending    SessionStatus = "pendente"
	StatusAccepted   SessionStatus = "aceita"
	StatusInProgress SessionStatus = "em_curso"
	StatusFinished   SessionStatus = "finalizada"
	StatusCancelled  SessionStatus = "cancelada"
	StatusExpired    SessionStatus = "expirada"
	StatusRejected   SessionStatus = "rejeitada"
)

// ActiveSessionStatuses are the statuses the time-based rules can still move a session out of.
var ActiveSessionStatuses = []SessionStatus{StatusPending, StatusAccepted, StatusInProgress}

// IsTerminal returns whether no further transition can leave s.
func (s SessionStatus) IsTerminal() bool {
	switch s {
	case StatusFinished, StatusCancelled, StatusExpired, StatusRejected:
		return true
	default:
		return false
	}
}

// Rating is appended to a session by one of its participants.
type Rating struct {
	Score     int       `json:"nota" mapstructure:"nota"`
	Comment   string    `json:"comentario" mapstructure:"comentario"`
	RaterID   string    `json:"avaliadorId" mapstructure:"avaliadorId"`
	CreatedAt time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

// Session is a scheduled mentoring slot between a user and a mentor.
type Session struct {
	ID       string        `json:"id" mapstructure:"id"`
	UserID   string        `json:"userId" mapstructure:"userId"`
	MentorID string        `json:"mentorId" mapstructure:"mentorId"`
	Date     string        `json:"data" mapstructure:"data"`
	Time     string        `json:"hora" mapstructure:"hora"`
	Category string        `json:"categoria" mapstructure:"categoria"`
	Status   SessionStatus `json:"status" mapstructure:"status"`
	Start    time.Time     `json:"dataHoraInicio" mapstructure:"dataHoraInicio"`
	End      time.Time     `json:"dataHoraFim" mapstructure:"dataHoraFim"`
	// Reason is set when a session is rejected or cancelled, including by a scheduling conflict.
	Reason    string    `json:"motivo,omitempty" mapstructure:"motivo"`
	Rating    *Rating   `json:"avaliacao,omitempty" mapstructure:"avaliacao"`
	CreatedAt time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

// IsParticipant reports whether userID is the session's user or mentor.
func (s *Session) IsParticipant(userID string) bool {
	return s.UserID == userID || s.MentorID == userID
}

// ScheduleSessionRequest asks for a session on a date (YYYY-MM-DD) at a time (HH:MM).
type ScheduleSessionRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
	Date     string `json:"data" validate:"required,datetime=2006-01-02"`
	Time     string `json:"hora" validate:"required,datetime=15:04"`
	Category string `json:"categoria"`
}

type RejectSessionRequest struct {
	Reason string `json:"motivo" validate:"required"`
}

type CancelSessionRequest struct {
	Reason string `json:"motivo"`
}

type RateSessionRequest struct {
	Score   int    `json:"nota"`
	Comment string `json:"comentario" validate:"max=1000"`
}

// SweepResult reports how many sessions a status sweep looked at and how many it changed.
type SweepResult struct {
	Checked int `json:"verificadas"`
	Updated int `json:"atualizadas"`
}
