package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestChatMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveMessage("BUSINESS_NEED")
	m.ObserveMessage("BUSINESS_NEED")
	m.ObserveCTAAttached("cooldown")
	m.ObserveCTASuppressed("cooldown_active")
	m.ObserveLLMFailure("classify")

	if got := testutil.ToFloat64(m.messagesTotal.WithLabelValues("BUSINESS_NEED")); got != 2 {
		t.Errorf("messages_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ctaAttachedTotal.WithLabelValues("cooldown")); got != 1 {
		t.Errorf("cta_attached_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ctaSuppressedTotal.WithLabelValues("cooldown_active")); got != 1 {
		t.Errorf("cta_suppressed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.llmFailuresTotal.WithLabelValues("classify")); got != 1 {
		t.Errorf("llm_failures_total = %v, want 1", got)
	}
}

func TestChatMetricsNilReceiver(t *testing.T) {
	var m *ChatMetrics
	// Must not panic.
	m.ObserveMessage("SMALLTALK")
	m.ObserveCTAAttached("cooldown")
	m.ObserveCTASuppressed("spacing")
	m.ObserveLLMFailure("generate")
	m.ObserveClassifierLatency(0.1)
	m.ObserveGeneratorLatency(0.2)
}
