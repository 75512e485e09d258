package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ivoice_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// Signups counts registration attempts by result (created|conflict|error).
	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ivoice_signups_total",
			Help: "Total number of signup attempts",
		},
		[]string{"result"},
	)

	// OTPVerifications counts OTP checks by result (verified|rejected).
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ivoice_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ivoice_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
