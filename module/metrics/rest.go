package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verichain/verichain/module"
)

type RestCollector struct {
	httpRequestDuration *prometheus.HistogramVec
}

var _ module.RestMetrics = (*RestCollector)(nil)

// NewRestCollector returns a new metrics RestCollector that implements the RestMetrics
// using Prometheus as the backend.
func NewRestCollector(registerer prometheus.Registerer) *RestCollector {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceRestAPI,
		Name:      "request_duration_seconds",
		Help:      "the duration of requests served by the REST API",
		Buckets:   prometheus.DefBuckets,
	}, []string{LabelRoute, LabelMethod, LabelCode})
	registerer.MustRegister(duration)

	return &RestCollector{httpRequestDuration: duration}
}

func (r *RestCollector) ObserveHTTPRequestDuration(route string, method string, code int, duration time.Duration) {
	r.httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(code)).Observe(duration.Seconds())
}
