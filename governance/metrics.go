// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type governanceMetrics struct {
	votesTotal         *prometheus.CounterVec
	duplicateVotes     prometheus.Counter
	votingClosed       prometheus.Counter
	finalizationsTotal *prometheus.CounterVec
	adminDecisions     *prometheus.CounterVec
	submitLatency      prometheus.Histogram
}

func (m *governanceMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.votesTotal = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "givewise_governance_votes_total",
		Help: "total accepted votes by decision",
	}, []string{"decision"})
	m.duplicateVotes = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "givewise_governance_duplicate_votes_total",
		Help: "total vote submissions rejected as duplicates",
	})
	m.votingClosed = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "givewise_governance_voting_closed_total",
		Help: "total vote submissions rejected because voting had closed",
	})
	m.finalizationsTotal = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "givewise_governance_finalizations_total",
		Help: "total quorum finalizations by outcome",
	}, []string{"outcome"})
	m.adminDecisions = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "givewise_governance_admin_decisions_total",
		Help: "total administrator decisions by outcome",
	}, []string{"decision"})
	m.submitLatency = promautoFactory.NewHistogram(prometheus.HistogramOpts{
		Name:    "givewise_governance_submit_vote_seconds",
		Help:    "latency of the transactional vote path",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	})
}
