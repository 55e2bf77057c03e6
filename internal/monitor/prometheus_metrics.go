package monitor

import "github.com/prometheus/client_golang/prometheus"

const namespace = "airdrop"

func newSummaryVecMetrics() map[MetricTag]*prometheus.SummaryVec {
	return map[MetricTag]*prometheus.SummaryVec{
		HttpRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace, Subsystem: "http", Name: string(HttpRequestDurationTag),
			Help: "HTTP requests durations, sliding window = 10m",
		},
			[]string{"status", "route", "method"},
		),
		LedgerConfirmationDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace, Subsystem: "ledger", Name: string(LedgerConfirmationDurationTag),
			Help: "Time spent waiting for airdrop transactions to reach the confirmed commitment",
		},
			[]string{"outcome"},
		),
	}
}

func newCounterVecMetrics() map[MetricTag]*prometheus.CounterVec {
	return map[MetricTag]*prometheus.CounterVec{
		AirdropClaimsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "business", Name: string(AirdropClaimsCounterTag),
			Help: "Airdrop claim attempts by outcome",
		},
			[]string{"status"},
		),
	}
}
