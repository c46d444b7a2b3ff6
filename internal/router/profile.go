package router

import (
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/config"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
)

func ProfileRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", getProfileHandler)
	router.Put("/", updateProfileHandler)
	router.Delete("/", deleteProfileHandler)
	router.Post("/pedido-exclusao", requestDeletionHandler)
	router.Get("/{userID}", getPublicProfileHandler)

	return router
}

// GET: /
func getProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := repo.Repository.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

// PUT: /
func updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := repo.Repository.UpdateProfile(r.Context(), id.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Atualizou o perfil", models.ActionProfileUpdate)

	writeJSON(w, r, http.StatusOK, user)
}

// GET: /{userID}
func getPublicProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := repo.Repository.GetUserByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user.ID == id.UserID || id.IsAdmin() {
		writeJSON(w, r, http.StatusOK, user)
		return
	}
	writeJSON(w, r, http.StatusOK, user.Public())
}

// DELETE: /
func deleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if id.IsAdmin() {
		writeError(w, r, qerrors.AdminSelfDeleteError)
		return
	}

	if err := repo.Repository.DeleteUser(r.Context(), id.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := auth.Revocations.Revoke(r.Context(), id.TokenID, id.ExpiresAt); err != nil {
		glog.Warningf("failed to revoke token of deleted user %s: %v", id.UserID, err)
	}
	activity.Record(id.UserID, "Eliminou a conta", models.ActionAccountDelete)

	writeMessage(w, r, http.StatusOK, "conta eliminada")
}

// POST: /pedido-exclusao
func requestDeletionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if config.Config.SuperAdminID != "" && id.UserID == config.Config.SuperAdminID {
		writeError(w, r, qerrors.SuperAdminProtectedError)
		return
	}

	var req models.CreateDeletionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pending, err := repo.Repository.HasPendingDeletionRequest(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pending {
		writeError(w, r, qerrors.PendingDeletionExists)
		return
	}

	deletion := &models.DeletionRequest{
		UserID:    id.UserID,
		Email:     id.Email,
		Reason:    req.Reason,
		Status:    models.RequestPending,
		CreatedAt: time.Now(),
	}
	if err := repo.Repository.CreateDeletionRequest(r.Context(), deletion); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Pediu a exclusão da conta", models.ActionDeletionRequest)

	writeJSON(w, r, http.StatusCreated, deletion.View())
}
