package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the assistant's chat
// turns.
type ConversationMetrics struct {
	turnsTotal        *prometheus.CounterVec
	bookingsConfirmed prometheus.Counter
	llmLatency        prometheus.Histogram
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "argonath",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total processed chat turns",
		}, []string{"path", "status"}),
		bookingsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "argonath",
			Subsystem: "conversation",
			Name:      "bookings_confirmed_total",
			Help:      "Total confirmed ticket bookings",
		}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "argonath",
			Subsystem: "conversation",
			Name:      "llm_latency_seconds",
			Help:      "Latency of LLM completions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsConfirmed, m.llmLatency)
	return m
}

// ObserveTurn records one processed message. Path is "booking" or
// "general"; status is the reply status tag.
func (m *ConversationMetrics) ObserveTurn(path, status string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(path, status).Inc()
}

// ObserveBookingConfirmed counts a finalized booking.
func (m *ConversationMetrics) ObserveBookingConfirmed() {
	if m == nil {
		return
	}
	m.bookingsConfirmed.Inc()
}

// ObserveLLMLatency records one completion round trip.
func (m *ConversationMetrics) ObserveLLMLatency(seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.Observe(seconds)
}
