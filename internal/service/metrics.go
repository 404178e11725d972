package service

import "github.com/prometheus/client_golang/prometheus"

var (
	skillsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_skills_created_total", Help: "Skills listed in the catalog",
	})
	skillsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_skills_deleted_total", Help: "Skills removed from the catalog",
	})
	sessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_sessions_created_total", Help: "Sessions booked",
	})
	sessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_session_status_changes_total", Help: "Session status updates by target status",
	}, []string{"status"})
	reviewsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_reviews_created_total", Help: "Reviews filed",
	})
	usersRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_users_registered_total", Help: "Accounts registered",
	})
)

func init() {
	prometheus.MustRegister(skillsCreated, skillsDeleted, sessionsCreated, sessionTransitions, reviewsCreated, usersRegistered)
}
