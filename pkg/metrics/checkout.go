package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout submissions and their outcomes.
type CheckoutMetrics struct {
	attempts        *prometheus.CounterVec
	paymentDuration prometheus.Histogram
	leadDeliveries  *prometheus.CounterVec
	fallbacks       prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by terminal outcome.",
	}, []string{"outcome"})
	paymentDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_duration_seconds",
		Help:    "Duration of payment gateway calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	leadDeliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_capture_total",
		Help: "Lead-capture webhook deliveries by event type and result.",
	}, []string{"event", "result"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_fallbacks_total",
		Help: "Assistant turns answered by the fixed fallback message.",
	})
	reg.MustRegister(attempts, paymentDuration, leadDeliveries, fallbacks)
	return &CheckoutMetrics{
		attempts:        attempts,
		paymentDuration: paymentDuration,
		leadDeliveries:  leadDeliveries,
		fallbacks:       fallbacks,
	}
}

// IncOutcome counts a terminal checkout outcome (success, failure).
func (c *CheckoutMetrics) IncOutcome(outcome string) {
	if c == nil || c.attempts == nil {
		return
	}
	c.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObservePaymentDuration records how long the gateway call took.
func (c *CheckoutMetrics) ObservePaymentDuration(duration time.Duration) {
	if c == nil || c.paymentDuration == nil {
		return
	}
	c.paymentDuration.Observe(duration.Seconds())
}

// IncLeadDelivery counts a lead webhook attempt (result: ok, error, skipped).
func (c *CheckoutMetrics) IncLeadDelivery(event, result string) {
	if c == nil || c.leadDeliveries == nil {
		return
	}
	c.leadDeliveries.WithLabelValues(normalizeLabel(event), normalizeLabel(result)).Inc()
}

// IncAssistantFallback counts a fallback assistant reply.
func (c *CheckoutMetrics) IncAssistantFallback() {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
