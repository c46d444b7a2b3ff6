package models

import "time"

const (
	FirestoreReportsCollection = "relatorios"
)

type Report struct {
	ID        string    `json:"id" mapstructure:"id"`
	Metric    string    `json:"metrica" mapstructure:"metrica"`
	Value     float64   `json:"valor" mapstructure:"valor"`
	Unit      string    `json:"unidade" mapstructure:"unidade"`
	CreatedAt time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

// PlaceholderReports are the fixed metrics written by the report seed.
func PlaceholderReports() []*Report {
	return []*Report{
		{ID: "utilizadores_ativos", Metric: "Utilizadores ativos", Value: 0, Unit: "utilizadores"},
		{ID: "sessoes_realizadas", Metric: "Sessões de mentoria realizadas", Value: 0, Unit: "sessões"},
		{ID: "termos_consultados", Metric: "Termos consultados", Value: 0, Unit: "consultas"},
	}
}
