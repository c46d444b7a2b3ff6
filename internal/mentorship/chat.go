package mentorship

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"strings"
)

// SendMessage appends a chat message to a session. Messages are only accepted while the session,
// refreshed first, is em_curso. Access is checked before the message itself.
func (s *Service) SendMessage(ctx context.Context, sessionID string, senderID string, req *models.SendMessageRequest) (*models.ChatMessage, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(senderID) {
		return nil, qerrors.NotSessionParticipantError
	}
	if session.Status != models.StatusInProgress {
		return nil, qerrors.ChatClosedError
	}

	msg := &models.ChatMessage{
		SenderID: senderID,
		Message:  strings.TrimSpace(req.Message),
		AudioURL: strings.TrimSpace(req.AudioURL),
		Type:     req.Type,
	}
	if msg.Type == "" {
		msg.Type = models.MessageText
		if msg.Message == "" && msg.AudioURL != "" {
			msg.Type = models.MessageAudio
		}
	}
	if (msg.Type == models.MessageText && msg.Message == "") || (msg.Type == models.MessageAudio && msg.AudioURL == "") {
		return nil, qerrors.EmptyMessageError
	}

	msg.Timestamp = s.now()
	if err := s.store.AddChatMessage(ctx, sessionID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages returns the chat history of a session, oldest first. Only participants and admins can read it.
func (s *Service) Messages(ctx context.Context, sessionID string, userID string, admin bool) ([]*models.ChatMessage, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !admin && !session.IsParticipant(userID) {
		return nil, qerrors.NotSessionParticipantError
	}
	return s.store.ListChatMessages(ctx, sessionID)
}
