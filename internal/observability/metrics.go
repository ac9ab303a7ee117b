package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpDurationHistogram *prometheus.HistogramVec
	lookupCounter         *prometheus.CounterVec
	cacheEventCounter     *prometheus.CounterVec
	transferCounter       *prometheus.CounterVec
	guardRejectionCounter prometheus.Counter
	workerRunCounter      *prometheus.CounterVec
)

// Init registers all Prometheus collectors.
func Init() {
	registerOnce.Do(func() {
		httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"})

		lookupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_lookups_total",
			Help: "Account-name lookup outcomes",
		}, []string{"outcome"})

		cacheEventCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_cache_events_total",
			Help: "Validation cache hits, misses and stale-result discards",
		}, []string{"event"})

		transferCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_submissions_total",
			Help: "Transfer submission outcomes",
		}, []string{"outcome"})

		guardRejectionCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transfer_guard_rejections_total",
			Help: "Submissions dropped by the in-flight guard",
		})

		workerRunCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_runs_total",
			Help: "Background worker run outcomes",
		}, []string{"worker", "result"})

		prometheus.MustRegister(
			httpDurationHistogram,
			lookupCounter,
			cacheEventCounter,
			transferCounter,
			guardRejectionCounter,
			workerRunCounter,
		)
	})
}

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if httpDurationHistogram == nil {
		return
	}
	httpDurationHistogram.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementLookup(outcome string) {
	if lookupCounter == nil {
		return
	}
	lookupCounter.WithLabelValues(outcome).Inc()
}

func IncrementCacheEvent(event string) {
	if cacheEventCounter == nil {
		return
	}
	cacheEventCounter.WithLabelValues(event).Inc()
}

func IncrementTransfer(outcome string) {
	if transferCounter == nil {
		return
	}
	transferCounter.WithLabelValues(outcome).Inc()
}

func IncrementGuardRejection() {
	if guardRejectionCounter == nil {
		return
	}
	guardRejectionCounter.Inc()
}

func IncrementWorkerRun(worker, result string) {
	if workerRunCounter == nil {
		return
	}
	workerRunCounter.WithLabelValues(worker, result).Inc()
}
