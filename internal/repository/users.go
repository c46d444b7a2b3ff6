package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, qerrors.UserNotFoundError
	}

	doc, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.UserNotFoundError, "failed to get user %s", id)
	}
	return userFromDoc(doc)
}

func (fr *FirebaseRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := fr.firestoreClient.Collection(models.FirestoreUsersCollection).
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, qerrors.UserNotFoundError
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up user by email")
	}
	return userFromDoc(doc)
}

func (fr *FirebaseRepository) CreateUser(ctx context.Context, u *models.User) error {
	users := fr.firestoreClient.Collection(models.FirestoreUsersCollection)
	ref := users.NewDoc()
	u.Email = strings.ToLower(u.Email)

	// The email check and the insert run in one transaction so that two concurrent registrations
	// with the same email cannot both succeed.
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(users.Where("email", "==", u.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return qerrors.DuplicateEmailError
		}

		return tx.Create(ref, map[string]interface{}{
			"nome":        u.Name,
			"email":       u.Email,
			"senhaHash":   u.PasswordHash,
			"role":        string(u.Role),
			"online":      u.Online,
			"ultimoLogin": u.LastLogin,
			"criadoEm":    u.CreatedAt,
		})
	})
	if err != nil {
		if errors.Is(err, qerrors.DuplicateEmailError) {
			return qerrors.DuplicateEmailError
		}
		return errors.Wrapf(err, "failed to create user")
	}

	u.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) UpdateLogin(ctx context.Context, id string, at time.Time) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "ultimoLogin", Value: at},
		{Path: "online", Value: true},
	})
	if err != nil {
		return translate(err, qerrors.UserNotFoundError, "failed to record login for %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) SetOnline(ctx context.Context, id string, online bool) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "online", Value: online},
	})
	if err != nil {
		return translate(err, qerrors.UserNotFoundError, "failed to set online flag for %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) UpdatePassword(ctx context.Context, id string, hash string) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "senhaHash", Value: hash},
	})
	if err != nil {
		return translate(err, qerrors.UserNotFoundError, "failed to update password for %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error) {
	var updates []firestore.Update
	if req.Name != nil {
		updates = append(updates, firestore.Update{Path: "nome", Value: *req.Name})
	}
	if req.Phone != nil {
		updates = append(updates, firestore.Update{Path: "telefone", Value: *req.Phone})
	}
	if req.Bio != nil {
		updates = append(updates, firestore.Update{Path: "bio", Value: *req.Bio})
	}
	if req.PhotoURL != nil {
		updates = append(updates, firestore.Update{Path: "fotoUrl", Value: *req.PhotoURL})
	}

	if len(updates) > 0 {
		_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Update(ctx, updates)
		if err != nil {
			return nil, translate(err, qerrors.UserNotFoundError, "failed to update profile for %s", id)
		}
	}

	return fr.GetUserByID(ctx, id)
}

func (fr *FirebaseRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "role", Value: string(role)},
	})
	if err != nil {
		return translate(err, qerrors.UserNotFoundError, "failed to set role for %s", id)
	}
	return nil
}

// DeleteUser removes the user along with the per-user documents keyed by their id.
func (fr *FirebaseRepository) DeleteUser(ctx context.Context, id string) error {
	userRef := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id)
	if _, err := userRef.Get(ctx); err != nil {
		return translate(err, qerrors.UserNotFoundError, "failed to get user %s", id)
	}

	batch := fr.firestoreClient.Batch()
	batch.Delete(userRef)
	batch.Delete(fr.firestoreClient.Collection(models.FirestoreTokensCollection).Doc(id))
	batch.Delete(fr.firestoreClient.Collection(models.FirestoreSettingsCollection).Doc(id))
	batch.Delete(fr.firestoreClient.Collection(models.FirestoreFavoritesCollection).Doc(id))
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete user %s", id)
	}
	return nil
}

func (fr *FirebaseRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).OrderBy("criadoEm", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list users")
	}
	return usersFromDocs(docs)
}

func (fr *FirebaseRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Where("role", "==", string(role)).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list users with role %s", role)
	}
	return usersFromDocs(docs)
}

// Helpers

func userFromDoc(doc *firestore.DocumentSnapshot) (*models.User, error) {
	var u models.User
	if err := decode(doc, &u); err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

func usersFromDocs(docs []*firestore.DocumentSnapshot) ([]*models.User, error) {
	users := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		u, err := userFromDoc(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
