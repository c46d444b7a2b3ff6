package router

import (
	"fmt"
	"net/http"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/notify"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

// NotifyRoutes lets admins push a notification to a list of users.
func NotifyRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx(), auth.RequireAdmin())

	router.Post("/", notifyHandler)

	return router
}

func NotificationRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", listNotificationsHandler)
	router.Patch("/lidas", markAllReadHandler)
	router.Patch("/{notificationID}/lida", markReadHandler)

	return router
}

// POST: /notificar
func notifyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.NotifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	notifications, err := notify.Broadcast(r.Context(), req.UserIDs, req.Type, req.Title, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, fmt.Sprintf("Enviou uma notificação a %d utilizadores", len(notifications)), models.ActionNotify)

	writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"enviadas":     len(notifications),
		"notificacoes": notifications,
	})
}

// GET: /notificacoes
func listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	notifications, err := repo.Repository.ListNotifications(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notifications)
}

// PATCH: /notificacoes/{notificationID}/lida
func markReadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := repo.Repository.MarkNotificationRead(r.Context(), id.UserID, chi.URLParam(r, "notificationID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "notificação marcada como lida")
}

// PATCH: /notificacoes/lidas
func markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	count, err := repo.Repository.MarkAllNotificationsRead(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"atualizadas": count})
}
