package router

import (
	"net/http"
	"strings"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func DictionaryRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", listTermsHandler)
	router.Get("/prefixo", prefixSearchHandler)
	router.Get("/pesquisa", substringSearchHandler)
	router.Get("/{termID}", getTermHandler)

	// Dictionary management
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin())

		r.Post("/", createTermHandler)
		r.Put("/{termID}", updateTermHandler)
		r.Delete("/{termID}", deleteTermHandler)
	})

	return router
}

// GET: /
func listTermsHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.TermFilter{
		Category: r.URL.Query().Get("categoria"),
		Language: r.URL.Query().Get("idioma"),
	}

	terms, err := repo.Repository.ListTerms(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, terms)
}

// GET: /{termID}
func getTermHandler(w http.ResponseWriter, r *http.Request) {
	term, err := repo.Repository.GetTerm(r.Context(), chi.URLParam(r, "termID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, term)
}

// GET: /prefixo?q=
func prefixSearchHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		writeError(w, r, qerrors.EmptySearchError)
		return
	}

	terms, err := repo.Repository.SearchTermsByPrefix(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, terms)
}

// GET: /pesquisa?q=
func substringSearchHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		writeError(w, r, qerrors.EmptySearchError)
		return
	}

	terms, err := repo.Repository.SearchTermsBySubstring(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, terms)
}

// POST: /
func createTermHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.TermRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	term := &models.Term{CreatedAt: time.Now()}
	applyTermRequest(term, &req)
	if err := repo.Repository.CreateTerm(r.Context(), term); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Adicionou o termo "+term.Term, models.ActionTermCreate)

	writeJSON(w, r, http.StatusCreated, term)
}

// PUT: /{termID}
func updateTermHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.TermRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	term, err := repo.Repository.GetTerm(r.Context(), chi.URLParam(r, "termID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	applyTermRequest(term, &req)
	if err := repo.Repository.UpdateTerm(r.Context(), term); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Editou o termo "+term.Term, models.ActionTermUpdate)

	writeJSON(w, r, http.StatusOK, term)
}

// DELETE: /{termID}
func deleteTermHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	termID := chi.URLParam(r, "termID")
	if err := repo.Repository.DeleteTerm(r.Context(), termID); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Removeu o termo "+termID, models.ActionTermDelete)

	writeMessage(w, r, http.StatusOK, "termo removido")
}

func applyTermRequest(t *models.Term, req *models.TermRequest) {
	t.Term = strings.TrimSpace(req.Term)
	t.TermLower = strings.ToLower(t.Term)
	t.Prefixes = models.TermPrefixes(t.Term)
	t.Definition = req.Definition
	t.Examples = req.Examples
	if t.Examples == nil {
		t.Examples = []string{}
	}
	t.Language = req.Language
	t.Category = req.Category
}
