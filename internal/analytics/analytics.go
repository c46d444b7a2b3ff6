package analytics

import (
	"mentorapp/internal/models"
	"sort"
)

// SummarizeScores builds the quiz score distribution. Does not need/use any Firebase connection.
func SummarizeScores(scores []*models.Score) *models.ScoreSummary {
	summary := &models.ScoreSummary{Submissions: len(scores)}
	if len(scores) == 0 {
		return summary
	}

	users := make(map[string]bool)
	values := make([]int, 0, len(scores))
	total := 0
	for _, s := range scores {
		users[s.UserID] = true
		values = append(values, s.Score)
		total += s.Score
	}

	summary.Users = len(users)
	summary.Average = float64(total) / float64(len(scores))
	summary.Scores = CalculatePercentiles(values)
	return summary
}

// SummarizeSessions counts sessions per status and averages the ratings they received.
func SummarizeSessions(sessions []*models.Session) *models.SessionSummary {
	summary := &models.SessionSummary{
		Total:    len(sessions),
		ByStatus: make(map[models.SessionStatus]int),
	}

	var durations []int
	ratingTotal := 0
	for _, s := range sessions {
		summary.ByStatus[s.Status]++

		if s.Rating != nil {
			summary.Rated++
			ratingTotal += s.Rating.Score
		}
		if !s.Start.IsZero() && s.End.After(s.Start) {
			durations = append(durations, int(s.End.Sub(s.Start).Minutes()))
		}
	}

	if summary.Rated > 0 {
		summary.AverageRating = float64(ratingTotal) / float64(summary.Rated)
	}
	summary.DurationMinutes = CalculatePercentiles(durations)
	return summary
}

func CalculatePercentiles(data []int) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sorted := append([]int(nil), data...)
	sort.Ints(sorted)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(sorted)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return float64(sorted[rankInt])
		}

		// Otherwise, linearly interpolate
		baseline := sorted[rankInt]
		interpolation := (rank - float64(rankInt)) * float64(sorted[rankInt+1]-sorted[rankInt])

		return float64(baseline) + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
		P99: calculatePercentile(99),
	}
}
