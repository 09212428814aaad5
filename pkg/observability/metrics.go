package observability

import (
	"context"

	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bsb"

// Metrics holds the bridge collectors.
type Metrics struct {
	unitsReceived prometheus.Counter
	unitsSkipped  *prometheus.CounterVec
	dispatched    *prometheus.CounterVec
	messagesSent  *prometheus.CounterVec
	sendFailures  *prometheus.CounterVec
	dispatchTime  prometheus.Histogram
	sessionState  prometheus.Gauge
	cacheLookups  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		unitsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_received_total",
			Help:      "Inbound units handed to the dispatcher.",
		}),
		unitsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_skipped_total",
			Help:      "Inbound units or messages dropped locally, by reason.",
		}, []string{"reason"}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_dispatched_total",
			Help:      "Handled content, by variant.",
		}, []string{"kind"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Outbound expressions written, by kind.",
		}, []string{"kind"}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Outbound expressions that could not be written, by kind.",
		}, []string{"kind"}),
		dispatchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent handling one content message.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_state",
			Help:      "Current session state (0 connecting, 1 handshaking, 2 listening, 3 terminated).",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_cache_lookups_total",
			Help:      "Diagram cache lookups, by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		m.unitsReceived, m.unitsSkipped, m.dispatched, m.messagesSent,
		m.sendFailures, m.dispatchTime, m.sessionState, m.cacheLookups,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			m.sessionState.Set(e.To.Ordinal())
		},
		OnReceive: func(context.Context, *domain.ReceiveEvent) {
			m.unitsReceived.Inc()
		},
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) {
			m.dispatched.WithLabelValues(string(e.Kind)).Inc()
			m.dispatchTime.Observe(e.Duration.Seconds())
		},
		OnSkip: func(_ context.Context, e *domain.SkipEvent) {
			m.unitsSkipped.WithLabelValues(string(e.Reason)).Inc()
		},
		OnSend: func(_ context.Context, e *domain.SendEvent) {
			if e.Err != nil {
				m.sendFailures.WithLabelValues(e.Kind).Inc()
				return
			}
			m.messagesSent.WithLabelValues(e.Kind).Inc()
		},
	}
}

// CacheLookup records a diagram cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
