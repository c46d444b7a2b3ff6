package router

import (
	"fmt"
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

const defaultQuestionLimit = 10

func QuizRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/perguntas", listQuestionsHandler)
	router.With(auth.RequireAdmin()).Post("/perguntas", createQuestionHandler)
	router.Post("/responder", submitAnswersHandler)
	router.Get("/pontuacoes/{userID}", listScoresHandler)

	return router
}

// GET: /perguntas?categoria=&limite=
func listQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limite", defaultQuestionLimit)

	questions, err := repo.Repository.ListQuestions(r.Context(), r.URL.Query().Get("categoria"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, questions)
}

// POST: /perguntas
func createQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if *req.CorrectAnswer >= len(req.Options) {
		writeError(w, r, qerrors.InvalidQuestionError)
		return
	}

	question := &models.Question{
		Category:      req.Category,
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
		CreatedAt:     time.Now(),
	}
	if err := repo.Repository.CreateQuestion(r.Context(), question); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Criou uma pergunta de quiz", models.ActionQuestionCreate)

	writeJSON(w, r, http.StatusCreated, question)
}

// POST: /responder
func submitAnswersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.SubmitAnswersRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	score := &models.Score{
		UserID: id.UserID,
		Score:  models.ScoreAnswers(req.Answers),
		Total:  len(req.Answers),
		Date:   time.Now(),
	}
	if err := repo.Repository.AddQuizScore(r.Context(), score); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, fmt.Sprintf("Respondeu a um quiz (%d/%d)", score.Score, score.Total), models.ActionQuizSubmit)

	writeJSON(w, r, http.StatusCreated, score)
}

// GET: /pontuacoes/{userID}
func listScoresHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfOrAdmin(w, r, "userID")
	if !ok {
		return
	}

	scores, err := repo.Repository.ListQuizScores(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, scores)
}
