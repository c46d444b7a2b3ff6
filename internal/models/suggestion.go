package models

import "time"

const (
	FirestoreSuggestionsCollection = "sugestoes"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pendente"
	SuggestionReview   SuggestionStatus = "em_analise"
	SuggestionAccepted SuggestionStatus = "aceite"
	SuggestionDeclined SuggestionStatus = "recusada"
)

type Suggestion struct {
	ID          string           `json:"id" mapstructure:"id"`
	UserID      string           `json:"userId" mapstructure:"userId"`
	Title       string           `json:"titulo" mapstructure:"titulo"`
	Description string           `json:"descricao" mapstructure:"descricao"`
	Status      SuggestionStatus `json:"status" mapstructure:"status"`
	CreatedAt   time.Time        `json:"criadoEm" mapstructure:"criadoEm"`
	UpdatedAt   time.Time        `json:"atualizadoEm" mapstructure:"atualizadoEm"`
}

type CreateSuggestionRequest struct {
	Title       string `json:"titulo" validate:"required"`
	Description string `json:"descricao" validate:"required"`
}

// UpdateSuggestionRequest edits the text (owner) or the status (admin).
type UpdateSuggestionRequest struct {
	Title       *string           `json:"titulo" validate:"omitempty,min=1"`
	Description *string           `json:"descricao" validate:"omitempty,min=1"`
	Status      *SuggestionStatus `json:"status" validate:"omitempty,oneof=pendente em_analise aceite recusada"`
}
