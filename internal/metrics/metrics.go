// Package metrics holds the Prometheus collectors jcadmin exports on the
// metrics route. Collectors register with the default registry on import.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// Transitions counts classification requests by target status and result
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_transitions_total",
		Help: "Total classification transitions by target status and result",
	}, []string{"status", "result"})

	// FileSteps counts read-modify-write steps against pattern lists by step and whether the file changed
	FileSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_file_steps_total",
		Help: "Total pattern list mutation steps by step name and outcome",
	}, []string{"step", "changed"})

	// FileErrors counts failed reads and writes of the jcblock files by operation
	FileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_file_errors_total",
		Help: "Total jcblock file I/O errors by operation",
	}, []string{"op"})

	// ParseSkips counts call log and pattern list lines that did not parse
	ParseSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_parse_skips_total",
		Help: "Total malformed lines skipped by file kind",
	}, []string{"file"})

	// CallerMutations counts renames and deletions by result
	CallerMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_caller_mutations_total",
		Help: "Total caller renames and deletions by operation and result",
	}, []string{"operation", "result"})

	// CacheLookups counts file cache hits and misses
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcadmin_file_cache_lookups_total",
		Help: "Total file cache lookups by result",
	}, []string{"result"})

	// RateLimited counts mutations refused because a client exceeded its rate
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jcadmin_rate_limited_total",
		Help: "Total mutation requests refused by the rate limiter",
	})

	// PollDuration tracks how long a modification time poll takes
	PollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jcadmin_poll_duration_seconds",
		Help:    "Modification time poll duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
	})
)

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObservePoll records the duration of one poll started at start.
func ObservePoll(start time.Time) {
	PollDuration.Observe(time.Since(start).Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
