package router

import (
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/analytics"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

func ReportRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx(), auth.RequireAdmin())

	router.Get("/", listReportsHandler)
	router.Post("/seed", seedReportsHandler)
	router.Get("/resumo", summaryHandler)

	return router
}

// GET: /
func listReportsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := repo.Repository.ListReports(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reports)
}

// POST: /seed
func seedReportsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	reports := models.PlaceholderReports()
	now := time.Now()
	for _, report := range reports {
		report.CreatedAt = now
	}
	if err := repo.Repository.SeedReports(r.Context(), reports); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Criou os relatórios iniciais", models.ActionReportSeed)

	writeJSON(w, r, http.StatusCreated, reports)
}

// GET: /resumo
//
// Summarizes quiz scores and mentorship sessions. Scores and sessions are read concurrently.
func summaryHandler(w http.ResponseWriter, r *http.Request) {
	var (
		scores   []*models.Score
		sessions []*models.Session
	)

	wg, ctx := errgroup.WithContext(r.Context())
	wg.Go(func() (err error) {
		scores, err = repo.Repository.ListAllQuizScores(ctx)
		return err
	})
	wg.Go(func() (err error) {
		sessions, err = repo.Repository.ListSessions(ctx)
		return err
	})
	if err := wg.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, &models.Summary{
		Quiz:     analytics.SummarizeScores(scores),
		Sessions: analytics.SummarizeSessions(sessions),
	})
}
