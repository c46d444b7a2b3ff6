package analytics

import (
	"math"
	"mentorapp/internal/models"
	"testing"
	"time"
)

func createScore(userID string, score int) *models.Score {
	return &models.Score{UserID: userID, Score: score, Total: 10, Date: time.Now()}
}

func createSession(status models.SessionStatus, minutes int, rating int) *models.Session {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	s := &models.Session{
		Status: status,
		Start:  start,
		End:    start.Add(time.Duration(minutes) * time.Minute),
	}
	if rating > 0 {
		s.Rating = &models.Rating{Score: rating}
	}
	return s
}

func TestSummarizeScores(t *testing.T) {
	scores := []*models.Score{
		createScore("1", 2),
		createScore("1", 10),
		createScore("2", 5),
	}
	summary := SummarizeScores(scores)

	if summary.Submissions != 3 {
		t.Errorf("Expected 3 submissions, got %d", summary.Submissions)
	}
	if summary.Users != 2 {
		t.Errorf("Expected 2 users, got %d", summary.Users)
	}
	if !approximatelyEqual(summary.Average, 17.0/3) {
		t.Errorf("Expected average %f, got %f", 17.0/3, summary.Average)
	}
	if !approximatelyEqual(summary.Scores.P50, 5) {
		t.Errorf("Expected P50 to be 5, got %f", summary.Scores.P50)
	}
}

func TestSummarizeScoresEmpty(t *testing.T) {
	summary := SummarizeScores(nil)
	if summary.Submissions != 0 || summary.Average != 0 {
		t.Errorf("Expected an empty summary, got %+v", summary)
	}
}

func TestSummarizeSessions(t *testing.T) {
	sessions := []*models.Session{
		createSession(models.StatusFinished, 30, 5),
		createSession(models.StatusFinished, 30, 4),
		createSession(models.StatusCancelled, 30, 0),
		createSession(models.StatusPending, 30, 0),
	}
	summary := SummarizeSessions(sessions)

	if summary.Total != 4 {
		t.Errorf("Expected 4 sessions, got %d", summary.Total)
	}
	if summary.ByStatus[models.StatusFinished] != 2 {
		t.Errorf("Expected 2 finished sessions, got %d", summary.ByStatus[models.StatusFinished])
	}
	if summary.Rated != 2 {
		t.Errorf("Expected 2 rated sessions, got %d", summary.Rated)
	}
	if !approximatelyEqual(summary.AverageRating, 4.5) {
		t.Errorf("Expected average rating 4.5, got %f", summary.AverageRating)
	}
	if !approximatelyEqual(summary.DurationMinutes.P99, 30) {
		t.Errorf("Expected every session to last 30 minutes, got %f", summary.DurationMinutes.P99)
	}
}

func approximatelyEqual(a float64, b float64) bool {
	return math.Abs(a-b) < 0.00001
}

func TestCalculatePercentiles(t *testing.T) {
	basicDistribution := []int{10, 2, 5}
	basicPercentiles := CalculatePercentiles(basicDistribution)
	expectedBasicPercentiles := &models.Percentiles{
		P50: 5,
		P90: 9,
		P99: 9.9,
	}

	if !approximatelyEqual(basicPercentiles.P50, expectedBasicPercentiles.P50) {
		t.Errorf("Expected P50 to be %f, got %f", expectedBasicPercentiles.P50, basicPercentiles.P50)
	}
	if !approximatelyEqual(basicPercentiles.P90, expectedBasicPercentiles.P90) {
		t.Errorf("Expected P90 to be %f, got %f", expectedBasicPercentiles.P90, basicPercentiles.P90)
	}
	if !approximatelyEqual(basicPercentiles.P99, expectedBasicPercentiles.P99) {
		t.Errorf("Expected P99 to be %f, got %f", expectedBasicPercentiles.P99, basicPercentiles.P99)
	}

	if basicDistribution[0] != 10 {
		t.Errorf("Expected the input not to be reordered, got %v", basicDistribution)
	}
}
