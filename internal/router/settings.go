package router

import (
	"net/http"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func SettingsRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", getSettingsHandler)
	router.Put("/", updateSettingsHandler)

	return router
}

// GET: /
func getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	settings, err := repo.Repository.GetSettings(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

// PUT: /
func updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.UpdateSettingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := repo.Repository.GetSettings(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Apply(settings)
	if err := repo.Repository.SaveSettings(r.Context(), id.UserID, settings); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Atualizou as configurações", models.ActionSettingsUpdate)

	writeJSON(w, r, http.StatusOK, settings)
}
