package repository

import (
	"context"
	"mentorapp/internal/models"

	"github.com/pkg/errors"
)

// GetSettings returns the user's settings, or the defaults if they never saved any.
func (fr *FirebaseRepository) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreSettingsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.DefaultSettings(), nil
		}
		return nil, errors.Wrapf(err, "failed to get settings for %s", userID)
	}

	s := models.DefaultSettings()
	if err := decode(doc, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (fr *FirebaseRepository) SaveSettings(ctx context.Context, userID string, s *models.Settings) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreSettingsCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"idioma":       s.Language,
		"tema":         s.Theme,
		"notificacoes": s.Notifications,
		"som":          s.Sound,
		"tamanhoFonte": s.FontSize,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to save settings for %s", userID)
	}
	return nil
}
