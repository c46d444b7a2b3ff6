package router

import (
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func SuggestionsRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", listSuggestionsHandler)
	router.Post("/", createSuggestionHandler)
	router.Get("/{suggestionID}", getSuggestionHandler)
	router.Put("/{suggestionID}", updateSuggestionHandler)

	return router
}

// POST: /
func createSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.CreateSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	suggestion := &models.Suggestion{
		UserID:      id.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.SuggestionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Repository.CreateSuggestion(r.Context(), suggestion); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Enviou uma sugestão", models.ActionSuggestionCreate)

	writeJSON(w, r, http.StatusCreated, suggestion)
}

// GET: /?todas=1
func listSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	owner := id.UserID
	if id.IsAdmin() && r.URL.Query().Get("todas") == "1" {
		owner = ""
	}

	suggestions, err := repo.Repository.ListSuggestions(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, suggestions)
}

// GET: /{suggestionID}
func getSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	suggestion, err := repo.Repository.GetSuggestion(r.Context(), chi.URLParam(r, "suggestionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if suggestion.UserID != id.UserID && !id.IsAdmin() {
		writeError(w, r, qerrors.PermissionDeniedError)
		return
	}
	writeJSON(w, r, http.StatusOK, suggestion)
}

// PUT: /{suggestionID}
func updateSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.UpdateSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	suggestionID := chi.URLParam(r, "suggestionID")
	suggestion, err := repo.Repository.GetSuggestion(r.Context(), suggestionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Owners edit the text, admins move the status.
	owner := suggestion.UserID == id.UserID
	if (req.Title != nil || req.Description != nil) && !owner {
		writeError(w, r, qerrors.PermissionDeniedError)
		return
	}
	if req.Status != nil && !id.IsAdmin() {
		writeError(w, r, qerrors.PermissionDeniedError)
		return
	}
	if !owner && !id.IsAdmin() {
		writeError(w, r, qerrors.PermissionDeniedError)
		return
	}

	updated, err := repo.Repository.UpdateSuggestion(r.Context(), suggestionID, &req, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Atualizou uma sugestão", models.ActionSuggestionUpdate)

	writeJSON(w, r, http.StatusOK, updated)
}
