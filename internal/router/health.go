package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Version is reported by /sobre. It is overridden at build time.
var Version = "dev"

var startedAt = time.Now()

func HealthRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/status", statusHandler)
	router.Get("/sobre", aboutHandler)

	return router
}

// GET: /status
func statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"timestamp":  time.Now().UTC(),
		"uptimeSecs": int64(time.Since(startedAt).Seconds()),
	})
}

// GET: /sobre
func aboutHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"nome":      "mentorapp",
		"descricao": "API da aplicação de mentoria: dicionário, quizzes, notas, mentorias e chat.",
		"versao":    Version,
	})
}
