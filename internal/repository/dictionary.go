package repository

import (
	"context"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) initializeTermsListener() {
	handleDoc := func(doc *firestore.DocumentSnapshot) error {
		t, err := termFromDoc(doc)
		if err != nil {
			return err
		}

		fr.termsLock.Lock()
		defer fr.termsLock.Unlock()
		fr.terms[doc.Ref.ID] = t
		return nil
	}

	handleRemove := func(id string) {
		fr.termsLock.Lock()
		defer fr.termsLock.Unlock()
		delete(fr.terms, id)
	}

	done := make(chan bool)
	go func() {
		err := fr.createCollectionInitializer(models.FirestoreDictionaryCollection, &done, handleDoc, handleRemove)
		if err != nil {
			glog.Errorf("dictionary listener stopped: %v", err)
		}
	}()
	<-done
}

func (fr *FirebaseRepository) ListTerms(ctx context.Context, filter models.TermFilter) ([]*models.Term, error) {
	query := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).Query
	if filter.Category != "" {
		query = query.Where("categoria", "==", filter.Category)
	}
	if filter.Language != "" {
		query = query.Where("idioma", "==", filter.Language)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list terms")
	}
	terms, err := termsFromDocs(docs)
	if err != nil {
		return nil, err
	}
	sortTerms(terms)
	return terms, nil
}

func (fr *FirebaseRepository) GetTerm(ctx context.Context, id string) (*models.Term, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, qerrors.TermNotFoundError, "failed to get term %s", id)
	}
	return termFromDoc(doc)
}

func (fr *FirebaseRepository) SearchTermsByPrefix(ctx context.Context, prefix string) ([]*models.Term, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).
		Where("prefixos", "array-contains", strings.ToLower(strings.TrimSpace(prefix))).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search terms by prefix")
	}
	terms, err := termsFromDocs(docs)
	if err != nil {
		return nil, err
	}
	sortTerms(terms)
	return terms, nil
}

// SearchTermsBySubstring scans the in-memory copy of the dictionary kept by the snapshot listener.
func (fr *FirebaseRepository) SearchTermsBySubstring(_ context.Context, query string) ([]*models.Term, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	fr.termsLock.RLock()
	defer fr.termsLock.RUnlock()

	terms := make([]*models.Term, 0)
	for _, t := range fr.terms {
		if strings.Contains(t.TermLower, q) {
			copied := *t
			terms = append(terms, &copied)
		}
	}
	sortTerms(terms)
	return terms, nil
}

func (fr *FirebaseRepository) CreateTerm(ctx context.Context, t *models.Term) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).Add(ctx, termData(t))
	if err != nil {
		return errors.Wrapf(err, "failed to create term")
	}
	t.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) UpdateTerm(ctx context.Context, t *models.Term) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).Doc(t.ID).Update(ctx, []firestore.Update{
		{Path: "termo", Value: t.Term},
		{Path: "termoLower", Value: t.TermLower},
		{Path: "prefixos", Value: t.Prefixes},
		{Path: "definicao", Value: t.Definition},
		{Path: "exemplos", Value: t.Examples},
		{Path: "idioma", Value: t.Language},
		{Path: "categoria", Value: t.Category},
	})
	if err != nil {
		return translate(err, qerrors.TermNotFoundError, "failed to update term %s", t.ID)
	}
	return nil
}

func (fr *FirebaseRepository) DeleteTerm(ctx context.Context, id string) error {
	ref := fr.firestoreClient.Collection(models.FirestoreDictionaryCollection).Doc(id)
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return translate(err, qerrors.TermNotFoundError, "failed to delete term %s", id)
	}
	return nil
}

// Helpers

func termData(t *models.Term) map[string]interface{} {
	examples := t.Examples
	if examples == nil {
		examples = []string{}
	}
	return map[string]interface{}{
		"termo":      t.Term,
		"termoLower": t.TermLower,
		"prefixos":   t.Prefixes,
		"definicao":  t.Definition,
		"exemplos":   examples,
		"idioma":     t.Language,
		"categoria":  t.Category,
		"criadoEm":   t.CreatedAt,
	}
}

func termFromDoc(doc *firestore.DocumentSnapshot) (*models.Term, error) {
	var t models.Term
	if err := decode(doc, &t); err != nil {
		return nil, err
	}
	t.ID = doc.Ref.ID
	return &t, nil
}

func termsFromDocs(docs []*firestore.DocumentSnapshot) ([]*models.Term, error) {
	terms := make([]*models.Term, 0, len(docs))
	for _, doc := range docs {
		t, err := termFromDoc(doc)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func sortTerms(terms []*models.Term) {
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].TermLower < terms[j].TermLower
	})
}
