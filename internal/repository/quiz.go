package repository

import (
	"context"
	"mentorapp/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

func (fr *FirebaseRepository) ListQuestions(ctx context.Context, category string, limit int) ([]*models.Question, error) {
	query := fr.firestoreClient.Collection(models.FirestoreQuizQuestionsCollection).Query
	if category != "" {
		query = query.Where("categoria", "==", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list quiz questions")
	}

	questions := make([]*models.Question, 0, len(docs))
	for _, doc := range docs {
		var q models.Question
		if err := decode(doc, &q); err != nil {
			return nil, err
		}
		q.ID = doc.Ref.ID
		questions = append(questions, &q)
	}
	return questions, nil
}

func (fr *FirebaseRepository) CreateQuestion(ctx context.Context, q *models.Question) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreQuizQuestionsCollection).Add(ctx, map[string]interface{}{
		"categoria":       q.Category,
		"pergunta":        q.Question,
		"opcoes":          q.Options,
		"respostaCorreta": q.CorrectAnswer,
		"criadoEm":        q.CreatedAt,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create quiz question")
	}
	q.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) AddQuizScore(ctx context.Context, s *models.Score) error {
	ref, _, err := fr.firestoreClient.Collection(models.FirestoreQuizScoresCollection).Add(ctx, map[string]interface{}{
		"userId":    s.UserID,
		"pontuacao": s.Score,
		"total":     s.Total,
		"data":      s.Date,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to add quiz score for %s", s.UserID)
	}
	s.ID = ref.ID
	return nil
}

func (fr *FirebaseRepository) ListQuizScores(ctx context.Context, userID string) ([]*models.Score, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreQuizScoresCollection).
		Where("userId", "==", userID).
		OrderBy("data", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list quiz scores for %s", userID)
	}
	return scoresFromDocs(docs)
}

func (fr *FirebaseRepository) ListAllQuizScores(ctx context.Context) ([]*models.Score, error) {
	docs, err := fr.firestoreClient.Collection(models.FirestoreQuizScoresCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list quiz scores")
	}
	return scoresFromDocs(docs)
}

func scoresFromDocs(docs []*firestore.DocumentSnapshot) ([]*models.Score, error) {
	scores := make([]*models.Score, 0, len(docs))
	for _, doc := range docs {
		var s models.Score
		if err := decode(doc, &s); err != nil {
			return nil, err
		}
		s.ID = doc.Ref.ID
		scores = append(scores, &s)
	}
	return scores, nil
}
