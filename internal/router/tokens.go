package router

import (
	"net/http"

	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func TokenRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Post("/", registerTokenHandler)
	router.Delete("/{userID}", deleteTokenHandler)

	return router
}

// POST: /
func registerTokenHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.RegisterTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := repo.Repository.SetPushToken(r.Context(), id.UserID, req.Token); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "token registado")
}

// DELETE: /{userID}
func deleteTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfOrAdmin(w, r, "userID")
	if !ok {
		return
	}

	if err := repo.Repository.DeletePushToken(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "token removido")
}
