package router

import (
	"net/http"

	"mentorapp/internal/auth"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

const defaultHistoryLimit = 50

func HistoryRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/{userID}", historyHandler)

	return router
}

// GET: /{userID}?limite=
func historyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfOrAdmin(w, r, "userID")
	if !ok {
		return
	}

	activities, err := repo.Repository.ListActivities(r.Context(), userID, queryInt(r, "limite", defaultHistoryLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, activities)
}
