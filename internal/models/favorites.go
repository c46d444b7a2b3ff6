package models

import "time"

const (
	FirestoreFavoritesCollection     = "favoritos"
	FirestoreFavoriteItemsCollection = "itens"
)

type FavoriteType string

const (
	FavoriteTerm FavoriteType = "termo"
	FavoriteNote FavoriteType = "nota"
)

// Field returns the array field on the favorites document that holds ids of this type.
func (t FavoriteType) Field() string {
	if t == FavoriteNote {
		return "notas"
	}
	return "termos"
}

// Favorites is the set of terms and notes a user marked, one document per user.
type Favorites struct {
	UserID string   `json:"userId" mapstructure:"userId"`
	Terms  []string `json:"termos" mapstructure:"termos"`
	Notes  []string `json:"notas" mapstructure:"notas"`
}

// FavoriteItem is the per-item marker kept next to the array fields.
type FavoriteItem struct {
	Type      FavoriteType `json:"tipo" mapstructure:"tipo"`
	ItemID    string       `json:"itemId" mapstructure:"itemId"`
	CreatedAt time.Time    `json:"criadoEm" mapstructure:"criadoEm"`
}

// FavoriteItemID is the document id of the marker for an item.
func FavoriteItemID(t FavoriteType, itemID string) string {
	return string(t) + "_" + itemID
}

type FavoriteRequest struct {
	Type   FavoriteType `json:"tipo" validate:"required,oneof=termo nota"`
	ItemID string       `json:"itemId" validate:"required"`
}
