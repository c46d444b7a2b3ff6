package repository

import (
	"context"
	"mentorapp/internal/models"

	"github.com/pkg/errors"
)

// SeedReports overwrites the given reports, keyed by their IDs, in a single batch.
func (fr *FirebaseRepository) SeedReports(ctx context.Context, reports []*models.Report) error {
	col := fr.firestoreClient.Collection(models.FirestoreReportsCollection)
	batch := fr.firestoreClient.Batch()
	for _, r := range reports {
		batch.Set(col.Doc(r.ID), map[string]interface{}{
			"metrica":  r.Metric,
			"valor":    r.Value,
			"unidade":  r.Unit,
			"criadoEm": r.CreatedAt,
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to seed %d reports", len(reports))
	}
	return nil
}

func (fr *FirebaseRepository) ListReports(ctx context.Context) ([]*models.Report, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreReportsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list reports")
	}

	reports := make([]*models.Report, 0, len(docs))
	for _, doc := range docs {
		var r models.Report
		if err := decode(doc, &r); err != nil {
			return nil, err
		}
		r.ID = doc.Ref.ID
		reports = append(reports, &r)
	}
	return reports, nil
}
