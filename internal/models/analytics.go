package models

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// ScoreSummary describes the distribution of quiz scores.
type ScoreSummary struct {
	Submissions int         `json:"submissoes"`
	Users       int         `json:"utilizadores"`
	Average     float64     `json:"media"`
	Scores      Percentiles `json:"pontuacoes"`
}

// SessionSummary describes mentorship sessions by status and rating.
type SessionSummary struct {
	Total         int                   `json:"total"`
	ByStatus      map[SessionStatus]int `json:"porStatus"`
	Rated         int                   `json:"avaliadas"`
	AverageRating float64               `json:"mediaAvaliacao"`
	// DurationMinutes is the distribution of scheduled session lengths.
	DurationMinutes Percentiles `json:"duracaoMinutos"`
}

type Summary struct {
	Quiz     *ScoreSummary   `json:"quiz"`
	Sessions *SessionSummary `json:"mentorias"`
}
