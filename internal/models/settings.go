package models

const (
	FirestoreSettingsCollection = "configuracoes"
)

// Settings holds a user's app preferences, one document per user.
type Settings struct {
	Language      string `json:"idioma" mapstructure:"idioma"`
	Theme         string `json:"tema" mapstructure:"tema"`
	Notifications bool   `json:"notificacoes" mapstructure:"notificacoes"`
	Sound         bool   `json:"som" mapstructure:"som"`
	FontSize      int    `json:"tamanhoFonte" mapstructure:"tamanhoFonte"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Language:      "pt",
		Theme:         "claro",
		Notifications: true,
		Sound:         true,
		FontSize:      16,
	}
}

type UpdateSettingsRequest struct {
	Language      *string `json:"idioma" validate:"omitempty,min=2"`
	Theme         *string `json:"tema" validate:"omitempty,oneof=claro escuro sistema"`
	Notifications *bool   `json:"notificacoes"`
	Sound         *bool   `json:"som"`
	FontSize      *int    `json:"tamanhoFonte" validate:"omitempty,min=10,max=32"`
}

// Apply copies the fields present in r onto s.
func (r *UpdateSettingsRequest) Apply(s *Settings) {
	if r.Language != nil {
		s.Language = *r.Language
	}
	if r.Theme != nil {
		s.Theme = *r.Theme
	}
	if r.Notifications != nil {
		s.Notifications = *r.Notifications
	}
	if r.Sound != nil {
		s.Sound = *r.Sound
	}
	if r.FontSize != nil {
		s.FontSize = *r.FontSize
	}
}
