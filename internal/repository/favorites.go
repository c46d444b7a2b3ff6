package repository

import (
	"context"
	"mentorapp/internal/models"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// AddFavorite writes the array entry and the marker document in one batch, so the two either
// both exist or neither does.
func (fr *FirebaseRepository) AddFavorite(ctx context.Context, userID string, t models.FavoriteType, itemID string) error {
	favRef := fr.firestoreClient.Collection(models.FirestoreFavoritesCollection).Doc(userID)
	itemRef := favRef.Collection(models.FirestoreFavoriteItemsCollection).Doc(models.FavoriteItemID(t, itemID))

	batch := fr.firestoreClient.Batch()
	batch.Set(favRef, map[string]interface{}{
		"userId":  userID,
		t.Field(): firestore.ArrayUnion(itemID),
	}, firestore.MergeAll)
	item := &models.FavoriteItem{Type: t, ItemID: itemID, CreatedAt: time.Now()}
	batch.Set(itemRef, map[string]interface{}{
		"tipo":     string(item.Type),
		"itemId":   item.ItemID,
		"criadoEm": item.CreatedAt,
	})
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to add favorite %s for %s", itemRef.ID, userID)
	}
	return nil
}

func (fr *FirebaseRepository) RemoveFavorite(ctx context.Context, userID string, t models.FavoriteType, itemID string) error {
	favRef := fr.firestoreClient.Collection(models.FirestoreFavoritesCollection).Doc(userID)
	itemRef := favRef.Collection(models.FirestoreFavoriteItemsCollection).Doc(models.FavoriteItemID(t, itemID))

	batch := fr.firestoreClient.Batch()
	batch.Set(favRef, map[string]interface{}{
		t.Field(): firestore.ArrayRemove(itemID),
	}, firestore.MergeAll)
	batch.Delete(itemRef)
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to remove favorite %s for %s", itemRef.ID, userID)
	}
	return nil
}

// GetFavorites returns the user's favorites. A user who never marked anything gets empty lists.
func (fr *FirebaseRepository) GetFavorites(ctx context.Context, userID string) (*models.Favorites, error) {
	favs := &models.Favorites{UserID: userID, Terms: []string{}, Notes: []string{}}

	doc, err := fr.firestoreClient.Collection(models.FirestoreFavoritesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return favs, nil
		}
		return nil, errors.Wrapf(err, "failed to get favorites for %s", userID)
	}

	if err := decode(doc, favs); err != nil {
		return nil, err
	}
	favs.UserID = userID
	if favs.Terms == nil {
		favs.Terms = []string{}
	}
	if favs.Notes == nil {
		favs.Notes = []string{}
	}
	return favs, nil
}

// ListFavoriteItems returns the marker documents of the user's favorites, newest first.
func (fr *FirebaseRepository) ListFavoriteItems(ctx context.Context, userID string) ([]*models.FavoriteItem, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreFavoritesCollection).Doc(userID).
		Collection(models.FirestoreFavoriteItemsCollection).
		OrderBy("criadoEm", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list favorite items for %s", userID)
	}

	items := make([]*models.FavoriteItem, 0, len(docs))
	for _, doc := range docs {
		var item models.FavoriteItem
		if err := decode(doc, &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}
