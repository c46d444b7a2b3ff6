package models

import "time"

const (
	FirestoreNotificationsCollection = "notificacoes"
	FirestoreTokensCollection        = "tokens"
)

type NotificationType string

const (
	NotificationGeneral   NotificationType = "geral"
	NotificationSession   NotificationType = "mentoria"
	NotificationPromotion NotificationType = "promocao"
	NotificationChat      NotificationType = "chat"
)

// Notification is an entry in a user's in-app feed.
type Notification struct {
	ID        string           `json:"id" mapstructure:"id"`
	UserID    string           `json:"userId" mapstructure:"userId"`
	Type      NotificationType `json:"tipo" mapstructure:"tipo"`
	Title     string           `json:"titulo" mapstructure:"titulo"`
	Message   string           `json:"mensagem" mapstructure:"mensagem"`
	Read      bool             `json:"lida" mapstructure:"lida"`
	CreatedAt time.Time        `json:"criadoEm" mapstructure:"criadoEm"`
}

// PushToken is the single device token registered for a user. Re-registering overwrites it.
type PushToken struct {
	UserID    string    `json:"userId" mapstructure:"userId"`
	Token     string    `json:"token" mapstructure:"token"`
	UpdatedAt time.Time `json:"atualizadoEm" mapstructure:"atualizadoEm"`
}

type RegisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type NotifyRequest struct {
	UserIDs []string         `json:"userIds" validate:"required,min=1,dive,required"`
	Title   string           `json:"titulo" validate:"required"`
	Message string           `json:"mensagem" validate:"required"`
	Type    NotificationType `json:"tipo"`
}
