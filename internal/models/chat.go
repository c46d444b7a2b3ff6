package models

import "time"

type MessageType string

const (
	MessageText  MessageType = "texto"
	MessageAudio MessageType = "audio"
)

// ChatMessage lives in the mensagens subcollection of a session.
type ChatMessage struct {
	ID        string      `json:"id" mapstructure:"id"`
	SenderID  string      `json:"remetenteId" mapstructure:"remetenteId"`
	Message   string      `json:"mensagem,omitempty" mapstructure:"mensagem"`
	AudioURL  string      `json:"audioUrl,omitempty" mapstructure:"audioUrl"`
	Type      MessageType `json:"tipo" mapstructure:"tipo"`
	Timestamp time.Time   `json:"timestamp" mapstructure:"timestamp"`
}

type SendMessageRequest struct {
	Message  string      `json:"mensagem"`
	AudioURL string      `json:"audioUrl" validate:"omitempty,url"`
	Type     MessageType `json:"tipo" validate:"omitempty,oneof=texto audio"`
}
