package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidtube_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_logins_total",
		Help: "Total number of login attempts by status.",
	}, []string{"status"})

	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_token_refreshes_total",
		Help: "Total number of token refresh attempts by status.",
	}, []string{"status"})

	commentWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_comment_writes_total",
		Help: "Total number of successful comment writes by action.",
	}, []string{"action"})
)

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
