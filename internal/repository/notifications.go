package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// Firestore rejects batches with more than 500 writes.
const maxBatchWrites = 500

func (fr *FirebaseRepository) SetPushToken(ctx context.Context, userID string, token string) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreTokensCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"userId":       userID,
		"token":        token,
		"atualizadoEm": time.Now(),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to set push token for %s", userID)
	}
	return nil
}

func (fr *FirebaseRepository) DeletePushToken(ctx context.Context, userID string) error {
	ref := fr.firestoreClient.Collection(models.FirestoreTokensCollection).Doc(userID)
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return translate(err, qerrors.PushTokenNotFoundError, "failed to delete push token for %s", userID)
	}
	return nil
}

func (fr *FirebaseRepository) GetPushToken(ctx context.Context, userID string) (*models.PushToken, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreTokensCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.PushTokenNotFoundError, "failed to get push token for %s", userID)
	}

	var t models.PushToken
	if err := decode(doc, &t); err != nil {
		return nil, err
	}
	t.UserID = doc.Ref.ID
	return &t, nil
}

func (fr *FirebaseRepository) CreateNotifications(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if len(notifications) > maxBatchWrites {
		return qerrors.New(qerrors.BadRequest, "demasiados destinatários")
	}

	col := fr.firestoreClient.Collection(models.FirestoreNotificationsCollection)
	batch := fr.firestoreClient.Batch()
	for _, n := range notifications {
		ref := col.NewDoc()
		n.ID = ref.ID
		batch.Create(ref, map[string]interface{}{
			"userId":   n.UserID,
			"tipo":     string(n.Type),
			"titulo":   n.Title,
			"mensagem": n.Message,
			"lida":     n.Read,
			"criadoEm": n.CreatedAt,
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to create %d notifications", len(notifications))
	}
	return nil
}

func (fr *FirebaseRepository) ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreNotificationsCollection).
		Where("userId", "==", userID).
		OrderBy("criadoEm", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list notifications for %s", userID)
	}

	notifications := make([]*models.Notification, 0, len(docs))
	for _, doc := range docs {
		var n models.Notification
		if err := decode(doc, &n); err != nil {
			return nil, err
		}
		n.ID = doc.Ref.ID
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

// MarkNotificationRead marks one of the user's notifications as read. Notifications of other users
// are reported as not found.
func (fr *FirebaseRepository) MarkNotificationRead(ctx context.Context, userID string, id string) error {
	ref := fr.firestoreClient.Collection(models.FirestoreNotificationsCollection).Doc(id)
	return fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return translate(err, qerrors.NotificationNotFound, "failed to get notification %s", id)
		}
		if owner, _ := doc.Data()["userId"].(string); owner != userID {
			return qerrors.NotificationNotFound
		}
		return tx.Update(ref, []firestore.Update{{Path: "lida", Value: true}})
	})
}

func (fr *FirebaseRepository) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreNotificationsCollection).
		Where("userId", "==", userID).
		Where("lida", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to list unread notifications for %s", userID)
	}

	for start := 0; start < len(docs); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(docs) {
			end = len(docs)
		}

		batch := fr.firestoreClient.Batch()
		for _, doc := range docs[start:end] {
			batch.Update(doc.Ref, []firestore.Update{{Path: "lida", Value: true}})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return start, errors.Wrapf(err, "failed to mark notifications read for %s", userID)
		}
	}
	return len(docs), nil
}
