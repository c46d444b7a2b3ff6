package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) CreateSession(ctx context.Context, s *models.Session) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Add(ctx, map[string]interface{}{
		"userId":         s.UserID,
		"mentorId":       s.MentorID,
		"data":           s.Date,
		"hora":           s.Time,
		"categoria":      s.Category,
		"status":         string(s.Status),
		"dataHoraInicio": s.Start,
		"dataHoraFim":    s.End,
		"criadoEm":       s.CreatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create session")
	}
	s.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.SessionNotFoundError, "failed to get session %s", id)
	}
	return sessionFromDoc(doc)
}

func (fr *FirebaseRepository) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return fr.querySessions(ctx, fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Query)
}

func (fr *FirebaseRepository) ListSessionsByUser(ctx context.Context, userID string) ([]*models.Session, error) {
	return fr.querySessions(ctx, fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Where("userId", "==", userID))
}

func (fr *FirebaseRepository) ListSessionsByMentor(ctx context.Context, mentorID string) ([]*models.Session, error) {
	return fr.querySessions(ctx, fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Where("mentorId", "==", mentorID))
}

func (fr *FirebaseRepository) ListActiveSessions(ctx context.Context) ([]*models.Session, error) {
	statuses := make([]string, 0, len(models.ActiveSessionStatuses))
	for _, s := range models.ActiveSessionStatuses {
		statuses = append(statuses, string(s))
	}
	return fr.querySessions(ctx, fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Where("status", "in", statuses))
}

func (fr *FirebaseRepository) UpdateSessionStatus(ctx context.Context, id string, from, to models.SessionStatus, reason string) error {
	ref := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Doc(id)
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if status, _ := doc.Data()["status"].(string); status != string(from) {
			return qerrors.StaleSessionError
		}

		updates := []firestore.Update{{Path: "status", Value: string(to)}}
		if reason != "" {
			updates = append(updates, firestore.Update{Path: "motivo", Value: reason})
		}
		return tx.Update(ref, updates)
	})
	if errors.Is(err, qerrors.StaleSessionError) {
		return qerrors.StaleSessionError
	}
	if err != nil {
		return translate(err, qerrors.SessionNotFoundError, "failed to update status of session %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) HasInProgressConflict(ctx context.Context, s *models.Session) (bool, error) {
	iter := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).
		Where("mentorId", "==", s.MentorID).
		Where("status", "==", string(models.StatusInProgress)).
		Where("dataHoraFim", ">", s.Start).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrapf(err, "failed to check conflicts for session %s", s.ID)
		}
		if doc.Ref.ID != s.ID {
			return true, nil
		}
	}
}

func (fr *FirebaseRepository) RateSession(ctx context.Context, id string, rating *models.Rating) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "avaliacao", Value: map[string]interface{}{
			"nota":        rating.Score,
			"comentario":  rating.Comment,
			"avaliadorId": rating.RaterID,
			"criadoEm":    rating.CreatedAt,
		}},
	})
	if err != nil {
		return translate(err, qerrors.SessionNotFoundError, "failed to rate session %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) AddChatMessage(ctx context.Context, sessionID string, m *models.ChatMessage) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Doc(sessionID).
		Collection(models.FirestoreChatMessagesCollection).
		Add(ctx, map[string]interface{}{
			"remetenteId": m.SenderID,
			"mensagem":    m.Message,
			"audioUrl":    m.AudioURL,
			"tipo":        string(m.Type),
			"timestamp":   m.Timestamp,
		})
	if err != nil {
		return errors.Wrapf(err, "failed to add message to session %s", sessionID)
	}
	m.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) ListChatMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreSessionsCollection).Doc(sessionID).
		Collection(models.FirestoreChatMessagesCollection).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list messages of session %s", sessionID)
	}

	messages := make([]*models.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		var m models.ChatMessage
		if err := decode(doc, &m); err != nil {
			return nil, err
		}
		m.ID = doc.Ref.ID
		messages = append(messages, &m)
	}
	return messages, nil
}

// Helpers

func (fr *FirebaseRepository) querySessions(ctx context.Context, query firestore.Query) ([]*models.Session, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list sessions")
	}

	sessions := make([]*models.Session, 0, len(docs))
	for _, doc := range docs {
		s, err := sessionFromDoc(doc)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	// Sorting here keeps the equality queries free of composite indexes.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})
	return sessions, nil
}

func sessionFromDoc(doc *firestore.DocumentSnapshot) (*models.Session, error) {
	var s models.Session
	if err := decode(doc, &s); err != nil {
		return nil, err
	}
	s.ID = doc.Ref.ID
	return &s, nil
}
