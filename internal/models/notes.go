package models

import "time"

const (
	FirestoreNotesCollection = "notas"
)

// Note is owned by the user who created it. No one else can read or change it.
type Note struct {
	ID        string    `json:"id" mapstructure:"id"`
	UserID    string    `json:"userId" mapstructure:"userId"`
	Title     string    `json:"titulo" mapstructure:"titulo"`
	Content   string    `json:"conteudo" mapstructure:"conteudo"`
	Tags      []string  `json:"tags" mapstructure:"tags"`
	CreatedAt time.Time `json:"criadoEm" mapstructure:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm" mapstructure:"atualizadoEm"`
}

type CreateNoteRequest struct {
	Title   string   `json:"titulo"`
	Content string   `json:"conteudo" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest replaces only the fields that are present.
type UpdateNoteRequest struct {
	Title   *string   `json:"titulo"`
	Content *string   `json:"conteudo" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags"`
}
