package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "scanner",
		Name:      "tokens_total",
		Help:      "Total number of tokens emitted, including error tokens",
	}, []string{"lexer"})
	metricSkippedTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "scanner",
		Name:      "skipped_tokens_total",
		Help:      "Total number of matched tokens dropped by skip rules",
	}, []string{"lexer"})
	metricErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "scanner",
		Name:      "errors_total",
		Help:      "Total number of positions where no rule matched",
	}, []string{"lexer"})
	metricScannedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "scanner",
		Name:      "scanned_bytes_total",
		Help:      "Total amount of input consumed",
	}, []string{"lexer"})
)

// counters holds the metric children for one lexer name.
type counters struct {
	tokens  prometheus.Counter
	skipped prometheus.Counter
	errors  prometheus.Counter
	bytes   prometheus.Counter
}

func countersFor(name string) counters {
	// Resolving the children here also makes the series present at zero.
	return counters{
		tokens:  metricTokens.WithLabelValues(name),
		skipped: metricSkippedTokens.WithLabelValues(name),
		errors:  metricErrors.WithLabelValues(name),
		bytes:   metricScannedBytes.WithLabelValues(name),
	}
}
