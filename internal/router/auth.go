package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
)

func AuthRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Post("/login", loginHandler)
	router.Post("/registeruser", registerUserHandler)
	router.Post("/esqueci-senha", forgotPasswordHandler)
	router.Post("/redefinir-senha/{userID}", resetPasswordHandler)

	// Auth routes that require authentication
	router.Group(func(r chi.Router) {
		r.Use(auth.AuthCtx())

		r.With(auth.RequireAdmin()).Post("/registeradmin", registerAdminHandler)
		r.Post("/logout", logoutHandler)
	})

	return router
}

// POST: /login
func loginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := repo.Repository.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, r, qerrors.InvalidCredentialsError)
		return
	}

	token, err := auth.NewAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	if err := repo.Repository.UpdateLogin(r.Context(), user.ID, now); err != nil {
		glog.Warningf("failed to record login for %s: %v", user.ID, err)
	} else {
		user.LastLogin = now
		user.Online = true
	}
	activity.Record(user.ID, "Iniciou sessão", models.ActionLogin)

	writeJSON(w, r, http.StatusOK, &models.AuthResponse{Token: token, User: user})
}

// POST: /registeruser
func registerUserHandler(w http.ResponseWriter, r *http.Request) {
	register(w, r, models.RoleUser)
}

// POST: /registeradmin
func registerAdminHandler(w http.ResponseWriter, r *http.Request) {
	register(w, r, models.RoleAdmin)
}

func register(w http.ResponseWriter, r *http.Request, role models.Role) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		Online:       true,
		LastLogin:    now,
		CreatedAt:    now,
	}
	if err := repo.Repository.CreateUser(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := auth.NewAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(user.ID, "Criou a conta", models.ActionRegister)

	writeJSON(w, r, http.StatusCreated, &models.AuthResponse{Token: token, User: user})
}

// POST: /esqueci-senha
func forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := repo.Repository.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"userId": user.ID})
}

// POST: /redefinir-senha/{userID}
//
// TODO: require a single-use reset code sent by email; anyone holding the user id can reset the password.
func resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req models.ResetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := repo.Repository.UpdatePassword(r.Context(), userID, hash); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(userID, "Redefiniu a palavra-passe", models.ActionPasswordReset)

	writeMessage(w, r, http.StatusOK, "palavra-passe redefinida com sucesso")
}

// POST: /logout
func logoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := repo.Repository.SetOnline(r.Context(), id.UserID, false); err != nil && !errors.Is(err, qerrors.NotFound) {
		writeError(w, r, err)
		return
	}
	if err := auth.Revocations.Revoke(r.Context(), id.TokenID, id.ExpiresAt); err != nil {
		glog.Warningf("failed to revoke token of %s: %v", id.UserID, err)
	}
	activity.Record(id.UserID, "Terminou sessão", models.ActionLogout)

	writeMessage(w, r, http.StatusOK, "sessão terminada")
}
