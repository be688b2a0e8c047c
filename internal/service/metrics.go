package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rowsAccepted = "accepted"
	rowsSkipped  = "skipped"
	rowsRejected = "rejected"
)

var rowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "loadprofile_rows_total",
		Help: "Load-profile rows by outcome: accepted into a profile, skipped by the window, or rejected as malformed.",
	},
	[]string{"result"},
)

func observeRows(result string, n int) {
	if n > 0 {
		rowsTotal.WithLabelValues(result).Add(float64(n))
	}
}

// ObserveRejectedRows counts malformed rows dropped while loading input.
func ObserveRejectedRows(n int) {
	observeRows(rowsRejected, n)
}
