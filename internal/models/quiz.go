package models

import "time"

const (
	FirestoreQuizQuestionsCollection = "quiz_perguntas"
	FirestoreQuizScoresCollection    = "quiz_pontuacoes"
)

type Question struct {
	ID            string    `json:"id" mapstructure:"id"`
	Category      string    `json:"categoria" mapstructure:"categoria"`
	Question      string    `json:"pergunta" mapstructure:"pergunta"`
	Options       []string  `json:"opcoes" mapstructure:"opcoes"`
	CorrectAnswer int       `json:"respostaCorreta" mapstructure:"respostaCorreta"`
	CreatedAt     time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

type QuestionRequest struct {
	Category      string   `json:"categoria" validate:"required"`
	Question      string   `json:"pergunta" validate:"required"`
	Options       []string `json:"opcoes" validate:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"respostaCorreta" validate:"required,min=0"`
}

type Answer struct {
	QuestionID string `json:"perguntaId" validate:"required"`
	Correct    bool   `json:"correta"`
}

type SubmitAnswersRequest struct {
	Answers []Answer `json:"respostas" validate:"required,min=1,dive"`
}

// Score is one quiz submission. Scores are never aggregated in the store.
type Score struct {
	ID     string    `json:"id" mapstructure:"id"`
	UserID string    `json:"userId" mapstructure:"userId"`
	Score  int       `json:"pontuacao" mapstructure:"pontuacao"`
	Total  int       `json:"total" mapstructure:"total"`
	Date   time.Time `json:"data" mapstructure:"data"`
}

// ScoreAnswers counts the answers the client marked as correct.
func ScoreAnswers(answers []Answer) int {
	score := 0
	for _, a := range answers {
		if a.Correct {
			score++
		}
	}
	return score
}
