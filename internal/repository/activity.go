package repository

import (
	"context"
	"mentorapp/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) AddActivity(ctx context.Context, a *models.Activity) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreActivitiesCollection).Add(ctx, map[string]interface{}{
		"userId":    a.UserID,
		"descricao": a.Description,
		"acao":      a.Action,
		"criadoEm":  firestore.ServerTimestamp,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to add activity for %s", a.UserID)
	}
	a.ID = ref.ID
	return nil
}

// ListActivities returns a user's most recent activities first. A non-positive limit returns all.
func (fr *FirebaseRepository) ListActivities(ctx context.Context, userID string, limit int) ([]*models.Activity, error) {
	query := fr.firestoreClient.Collection(models.FirestoreActivitiesCollection).
		Where("userId", "==", userID).
		OrderBy("criadoEm", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list activities for %s", userID)
	}

	activities := make([]*models.Activity, 0, len(docs))
	for _, doc := range docs {
		var a models.Activity
		if err := decode(doc, &a); err != nil {
			return nil, err
		}
		a.ID = doc.Ref.ID
		activities = append(activities, &a)
	}
	return activities, nil
}
