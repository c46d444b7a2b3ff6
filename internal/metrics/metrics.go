package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorapp_http_responses_total",
		Help: "HTTP responses by route group and status class.",
	}, []string{"group", "class"})

	ActivityFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorapp_activity_log_failures_total",
		Help: "Activity log writes that failed and were dropped.",
	})

	PushSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorapp_push_sends_total",
		Help: "Push notifications handed to the provider, by result.",
	}, []string{"result"})

	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorapp_session_transitions_total",
		Help: "Mentorship session status changes.",
	}, []string{"from", "to"})
)

// StatusClass turns 404 into "4xx".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
