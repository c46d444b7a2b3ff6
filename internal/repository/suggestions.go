package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) CreateSuggestion(ctx context.Context, s *models.Suggestion) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreSuggestionsCollection).Add(ctx, map[string]interface{}{
		"userId":       s.UserID,
		"titulo":       s.Title,
		"descricao":    s.Description,
		"status":       string(s.Status),
		"criadoEm":     s.CreatedAt,
		"atualizadoEm": s.UpdatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create suggestion")
	}
	s.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreSuggestionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.SuggestionNotFoundError, "failed to get suggestion %s", id)
	}
	return suggestionFromDoc(doc)
}

// ListSuggestions returns the suggestions of userID, or every suggestion when userID is empty.
func (fr *FirebaseRepository) ListSuggestions(ctx context.Context, userID string) ([]*models.Suggestion, error) {
	query := fr.firestoreClient.Collection(models.FirestoreSuggestionsCollection).Query
	if userID != "" {
		query = query.Where("userId", "==", userID)
	}

	docs, err := query.OrderBy("criadoEm", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list suggestions")
	}

	suggestions := make([]*models.Suggestion, 0, len(docs))
	for _, doc := range docs {
		s, err := suggestionFromDoc(doc)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func (fr *FirebaseRepository) UpdateSuggestion(ctx context.Context, id string, req *models.UpdateSuggestionRequest, at time.Time) (*models.Suggestion, error) {
	updates := []firestore.Update{{Path: "atualizadoEm", Value: at}}
	if req.Title != nil {
		updates = append(updates, firestore.Update{Path: "titulo", Value: *req.Title})
	}
	if req.Description != nil {
		updates = append(updates, firestore.Update{Path: "descricao", Value: *req.Description})
	}
	if req.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*req.Status)})
	}

	ref := fr.firestoreClient.Collection(models.FirestoreSuggestionsCollection).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		return nil, translate(err, qerrors.SuggestionNotFoundError, "failed to update suggestion %s", id)
	}
	return fr.GetSuggestion(ctx, id)
}

func suggestionFromDoc(doc *firestore.DocumentSnapshot) (*models.Suggestion, error) {
	var s models.Suggestion
	if err := decode(doc, &s); err != nil {
		return nil, err
	}
	s.ID = doc.Ref.ID
	return &s, nil
}
