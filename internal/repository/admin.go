package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) CreatePromotionRequest(ctx context.Context, p *models.PromotionRequest) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestorePromotionRequestsCollection).Add(ctx, map[string]interface{}{
		"userId":   p.UserID,
		"email":    strings.ToLower(p.Email),
		"cargo":    string(p.Role),
		"motivo":   p.Reason,
		"status":   string(p.Status),
		"criadoEm": p.CreatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create promotion request for %s", p.Email)
	}
	p.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) GetPromotionRequest(ctx context.Context, id string) (*models.PromotionRequest, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestorePromotionRequestsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.PromotionNotFoundError, "failed to get promotion request %s", id)
	}
	return promotionFromDoc(doc)
}

func (fr *FirebaseRepository) HasPendingPromotionRequest(ctx context.Context, email string) (bool, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestorePromotionRequestsCollection).
		Where("email", "==", strings.ToLower(email)).
		Where("status", "==", string(models.RequestPending)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up pending promotion requests for %s", email)
	}
	return len(docs) > 0, nil
}

func (fr *FirebaseRepository) ListPromotionRequests(ctx context.Context) ([]*models.PromotionRequest, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestorePromotionRequestsCollection).
		OrderBy("criadoEm", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list promotion requests")
	}

	requests := make([]*models.PromotionRequest, 0, len(docs))
	for _, doc := range docs {
		p, err := promotionFromDoc(doc)
		if err != nil {
			return nil, err
		}
		requests = append(requests, p)
	}
	return requests, nil
}

func (fr *FirebaseRepository) ResolvePromotionRequest(ctx context.Context, p *models.PromotionRequest) error {
	ref := fr.firestoreClient.Collection(models.FirestorePromotionRequestsCollection).Doc(p.ID)
	return fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return translate(err, qerrors.PromotionNotFoundError, "failed to get promotion request %s", p.ID)
		}
		if status, _ := doc.Data()["status"].(string); status != string(models.RequestPending) {
			return qerrors.PromotionNotPendingError
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(p.Status)},
			{Path: "resolvidoPor", Value: p.ResolvedBy},
			{Path: "resolvidoEm", Value: p.ResolvedAt},
			{Path: "observacao", Value: p.Observation},
		})
	})
}

func (fr *FirebaseRepository) CreateDeletionRequest(ctx context.Context, d *models.DeletionRequest) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreDeletionRequestsCollection).Add(ctx, map[string]interface{}{
		"userId":   d.UserID,
		"email":    d.Email,
		"motivo":   d.Reason,
		"status":   string(d.Status),
		"criadoEm": d.CreatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create deletion request for %s", d.UserID)
	}
	d.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) HasPendingDeletionRequest(ctx context.Context, userID string) (bool, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreDeletionRequestsCollection).
		Where("userId", "==", userID).
		Where("status", "==", string(models.RequestPending)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up pending deletion requests for %s", userID)
	}
	return len(docs) > 0, nil
}

func (fr *FirebaseRepository) ListDeletionRequests(ctx context.Context) ([]*models.DeletionRequest, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreDeletionRequestsCollection).
		OrderBy("criadoEm", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list deletion requests")
	}

	requests := make([]*models.DeletionRequest, 0, len(docs))
	for _, doc := range docs {
		var d models.DeletionRequest
		if err := decode(doc, &d); err != nil {
			return nil, err
		}
		d.ID = doc.Ref.ID
		requests = append(requests, &d)
	}
	return requests, nil
}

func promotionFromDoc(doc *firestore.DocumentSnapshot) (*models.PromotionRequest, error) {
	var p models.PromotionRequest
	if err := decode(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.Ref.ID
	return &p, nil
}
