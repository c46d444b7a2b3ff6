package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreNotesCollection).
		Where("userId", "==", userID).
		OrderBy("criadoEm", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list notes for %s", userID)
	}

	notes := make([]*models.Note, 0, len(docs))
	for _, doc := range docs {
		n, err := noteFromDoc(doc)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (fr *FirebaseRepository) GetNote(ctx context.Context, id string) (*models.Note, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreNotesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.NoteNotFoundError, "failed to get note %s", id)
	}
	return noteFromDoc(doc)
}

func (fr *FirebaseRepository) CreateNote(ctx context.Context, n *models.Note) error {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreNotesCollection).Add(ctx, map[string]interface{}{
		"userId":       n.UserID,
		"titulo":       n.Title,
		"conteudo":     n.Content,
		"tags":         tags,
		"criadoEm":     n.CreatedAt,
		"atualizadoEm": n.UpdatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create note")
	}
	n.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) UpdateNote(ctx context.Context, id string, req *models.UpdateNoteRequest, at time.Time) (*models.Note, error) {
	updates := []firestore.Update{{Path: "atualizadoEm", Value: at}}
	if req.Title != nil {
		updates = append(updates, firestore.Update{Path: "titulo", Value: *req.Title})
	}
	if req.Content != nil {
		updates = append(updates, firestore.Update{Path: "conteudo", Value: *req.Content})
	}
	if req.Tags != nil {
		updates = append(updates, firestore.Update{Path: "tags", Value: *req.Tags})
	}

	ref := fr.firestoreClient.Collection(models.FirestoreNotesCollection).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		return nil, translate(err, qerrors.NoteNotFoundError, "failed to update note %s", id)
	}
	return fr.GetNote(ctx, id)
}

func (fr *FirebaseRepository) DeleteNote(ctx context.Context, id string) error {
	ref := fr.firestoreClient.Collection(models.FirestoreNotesCollection).Doc(id)
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return translate(err, qerrors.NoteNotFoundError, "failed to delete note %s", id)
	}
	return nil
}

func noteFromDoc(doc *firestore.DocumentSnapshot) (*models.Note, error) {
	var n models.Note
	if err := decode(doc, &n); err != nil {
		return nil, err
	}
	n.ID = doc.Ref.ID
	return &n, nil
}
