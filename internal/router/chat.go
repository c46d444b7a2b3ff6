package router

import (
	"net/http"

	"mentorapp/internal/auth"
	"mentorapp/internal/mentorship"
	"mentorapp/internal/models"
	"mentorapp/internal/notify"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func ChatRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Post("/enviar/{sessionID}", sendMessageHandler)
	router.Get("/mensagens/{sessionID}", listMessagesHandler)

	return router
}

// POST: /enviar/{sessionID}
func sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	msg, err := mentorship.Default.SendMessage(r.Context(), sessionID, id.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if session, err := repo.Repository.GetSession(r.Context(), sessionID); err == nil {
		other := session.MentorID
		if id.UserID == session.MentorID {
			other = session.UserID
		}
		body := msg.Message
		if msg.Type == models.MessageAudio {
			body = "Mensagem de áudio"
		}
		notify.Notify([]string{other}, models.NotificationChat, "Nova mensagem", body)
	}

	writeJSON(w, r, http.StatusCreated, msg)
}

// GET: /mensagens/{sessionID}
func listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	messages, err := mentorship.Default.Messages(r.Context(), chi.URLParam(r, "sessionID"), id.UserID, id.IsAdmin())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messages)
}
