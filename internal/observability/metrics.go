// Package observability provides Prometheus metric definitions.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts login attempts by outcome (success, bad_password, unknown_email).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// Registrations counts registration attempts by outcome (success, conflict).
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// LikeToggles counts like-toggle operations by resulting action (liked, unliked).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total number of like toggles by resulting action",
	}, []string{"action"})

	// SessionRejections counts protected requests turned away by the session
	// gate, by cause (absent, invalid, expired).
	SessionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_session_rejections_total",
		Help: "Total number of requests redirected to login by the session gate",
	}, []string{"cause"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
