package models

import (
	"strings"
	"time"
)

const (
	FirestoreDictionaryCollection = "dicionario"
)

type Term struct {
	ID         string    `json:"id" mapstructure:"id"`
	Term       string    `json:"termo" mapstructure:"termo"`
	TermLower  string    `json:"termoLower" mapstructure:"termoLower"`
	Prefixes   []string  `json:"-" mapstructure:"prefixos"`
	Definition string    `json:"definicao" mapstructure:"definicao"`
	Examples   []string  `json:"exemplos" mapstructure:"exemplos"`
	Language   string    `json:"idioma" mapstructure:"idioma"`
	Category   string    `json:"categoria" mapstructure:"categoria"`
	CreatedAt  time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

type TermRequest struct {
	Term       string   `json:"termo" validate:"required"`
	Definition string   `json:"definicao" validate:"required"`
	Examples   []string `json:"exemplos"`
	Language   string   `json:"idioma"`
	Category   string   `json:"categoria"`
}

// TermFilter narrows a term listing. Empty fields match everything.
type TermFilter struct {
	Category string
	Language string
}

// TermPrefixes returns every lowercase prefix of term, shortest first. These are stored on the
// term so that prefix search is a single array-contains query.
func TermPrefixes(term string) []string {
	runes := []rune(strings.ToLower(strings.TrimSpace(term)))
	prefixes := make([]string, 0, len(runes))
	for i := 1; i <= len(runes); i++ {
		prefixes = append(prefixes, string(runes[:i]))
	}
	return prefixes
}
