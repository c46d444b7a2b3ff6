package router

import (
	"fmt"
	"net/http"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/mentorship"
	"mentorapp/internal/models"
	"mentorapp/internal/notify"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func MentorshipRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Post("/agendar", scheduleSessionHandler)
	router.Get("/mentores", listMentorsHandler)
	router.Get("/usuario/{userID}", listUserSessionsHandler)
	router.Get("/mentor/{mentorID}", listMentorSessionsHandler)
	router.Post("/atualizar-status", sweepSessionsHandler)

	router.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", getSessionHandler)
		r.Patch("/aceitar", acceptSessionHandler)
		r.Patch("/rejeitar", rejectSessionHandler)
		r.Patch("/cancelar", cancelSessionHandler)
		r.Post("/avaliar", rateSessionHandler)
	})

	// Admin-only routes
	router.With(auth.RequireAdmin()).Get("/", listSessionsHandler)

	return router
}

// POST: /agendar
func scheduleSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.ScheduleSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := mentorship.Default.Schedule(r.Context(), id.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, fmt.Sprintf("Agendou uma mentoria para %s às %s", session.Date, session.Time), models.ActionSessionSchedule)
	notify.Notify([]string{session.MentorID}, models.NotificationSession, "Novo pedido de mentoria",
		fmt.Sprintf("Tem um novo pedido de mentoria para %s às %s.", session.Date, session.Time))

	writeJSON(w, r, http.StatusCreated, session)
}

// GET: /
func listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := repo.Repository.ListSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	refreshAndWrite(w, r, sessions)
}

// GET: /mentores
func listMentorsHandler(w http.ResponseWriter, r *http.Request) {
	mentors, err := repo.Repository.ListUsersByRole(r.Context(), models.RoleMentor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	public := make([]*models.PublicUser, 0, len(mentors))
	for _, m := range mentors {
		public = append(public, m.Public())
	}
	writeJSON(w, r, http.StatusOK, public)
}

// GET: /usuario/{userID}
func listUserSessionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfOrAdmin(w, r, "userID")
	if !ok {
		return
	}

	sessions, err := repo.Repository.ListSessionsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refreshAndWrite(w, r, sessions)
}

// GET: /mentor/{mentorID}
func listMentorSessionsHandler(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := selfOrAdmin(w, r, "mentorID")
	if !ok {
		return
	}

	sessions, err := repo.Repository.ListSessionsByMentor(r.Context(), mentorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refreshAndWrite(w, r, sessions)
}

// POST: /atualizar-status
func sweepSessionsHandler(w http.ResponseWriter, r *http.Request) {
	result, err := mentorship.Default.Sweep(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// GET: /{sessionID}
func getSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	session, err := mentorship.Default.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !id.IsAdmin() && !session.IsParticipant(id.UserID) {
		writeError(w, r, qerrors.NotSessionParticipantError)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

// PATCH: /{sessionID}/aceitar
func acceptSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	session, err := mentorship.Default.Accept(r.Context(), chi.URLParam(r, "sessionID"), id.UserID, id.IsAdmin())
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Aceitou a mentoria "+session.ID, models.ActionSessionAccept)
	notify.Notify([]string{session.UserID}, models.NotificationSession, "Mentoria aceite",
		fmt.Sprintf("A sua mentoria de %s às %s foi aceite.", session.Date, session.Time))

	writeJSON(w, r, http.StatusOK, session)
}

// PATCH: /{sessionID}/rejeitar
func rejectSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.RejectSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := mentorship.Default.Reject(r.Context(), chi.URLParam(r, "sessionID"), id.UserID, id.IsAdmin(), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Rejeitou a mentoria "+session.ID, models.ActionSessionReject)
	notify.Notify([]string{session.UserID}, models.NotificationSession, "Mentoria rejeitada",
		fmt.Sprintf("A sua mentoria de %s às %s foi rejeitada: %s", session.Date, session.Time, req.Reason))

	writeJSON(w, r, http.StatusOK, session)
}

// PATCH: /{sessionID}/cancelar
func cancelSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	// The body is optional.
	var req models.CancelSessionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	session, err := mentorship.Default.Cancel(r.Context(), chi.URLParam(r, "sessionID"), id.UserID, id.IsAdmin(), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Cancelou a mentoria "+session.ID, models.ActionSessionCancel)

	other := session.MentorID
	if id.UserID == session.MentorID {
		other = session.UserID
	}
	notify.Notify([]string{other}, models.NotificationSession, "Mentoria cancelada",
		fmt.Sprintf("A mentoria de %s às %s foi cancelada.", session.Date, session.Time))

	writeJSON(w, r, http.StatusOK, session)
}

// POST: /{sessionID}/avaliar
func rateSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.RateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := mentorship.Default.Rate(r.Context(), chi.URLParam(r, "sessionID"), id.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, fmt.Sprintf("Avaliou a mentoria %s com %d", session.ID, req.Score), models.ActionSessionRate)

	writeJSON(w, r, http.StatusOK, session)
}

func refreshAndWrite(w http.ResponseWriter, r *http.Request, sessions []*models.Session) {
	sessions, err := mentorship.Default.RefreshAll(r.Context(), sessions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessions)
}

// selfOrAdmin returns the user id in the URL parameter param if the caller is that user or an admin.
func selfOrAdmin(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	id, ok := identity(w, r)
	if !ok {
		return "", false
	}

	target := chi.URLParam(r, param)
	if target != id.UserID && !id.IsAdmin() {
		writeError(w, r, qerrors.PermissionDeniedError)
		return "", false
	}
	return target, true
}
