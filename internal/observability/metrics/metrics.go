package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat flow.
type ChatMetrics struct {
	messagesTotal      *prometheus.CounterVec
	ctaAttachedTotal   *prometheus.CounterVec
	ctaSuppressedTotal *prometheus.CounterVec
	llmFailuresTotal   *prometheus.CounterVec
	classifierLatency  prometheus.Histogram
	generatorLatency   prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages handled, by classified intent",
		}, []string{"intent"}),
		ctaAttachedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "cta_attached_total",
			Help:      "Replies that carried the booking CTA",
		}, []string{"policy"}),
		ctaSuppressedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "cta_suppressed_total",
			Help:      "CTA-eligible turns where the CTA was suppressed",
		}, []string{"reason"}),
		llmFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "llm_failures_total",
			Help:      "Classifier/generator calls that failed or timed out",
		}, []string{"op"}),
		classifierLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "classifier_latency_seconds",
			Help:      "Latency of intent classification calls",
			Buckets:   prometheus.DefBuckets,
		}),
		generatorLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zenvia",
			Subsystem: "chat",
			Name:      "generator_latency_seconds",
			Help:      "Latency of reply generation calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.messagesTotal,
		m.ctaAttachedTotal,
		m.ctaSuppressedTotal,
		m.llmFailuresTotal,
		m.classifierLatency,
		m.generatorLatency,
	)
	return m
}

func (m *ChatMetrics) ObserveMessage(intent string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(intent).Inc()
}

func (m *ChatMetrics) ObserveCTAAttached(policy string) {
	if m == nil {
		return
	}
	m.ctaAttachedTotal.WithLabelValues(policy).Inc()
}

func (m *ChatMetrics) ObserveCTASuppressed(reason string) {
	if m == nil {
		return
	}
	m.ctaSuppressedTotal.WithLabelValues(reason).Inc()
}

func (m *ChatMetrics) ObserveLLMFailure(op string) {
	if m == nil {
		return
	}
	m.llmFailuresTotal.WithLabelValues(op).Inc()
}

func (m *ChatMetrics) ObserveClassifierLatency(seconds float64) {
	if m == nil {
		return
	}
	m.classifierLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveGeneratorLatency(seconds float64) {
	if m == nil {
		return
	}
	m.generatorLatency.Observe(seconds)
}
