package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
	"github.com/prosaasfilms/configurator-backend/pkg/metrics"
)

// Payload is the fire-and-forget notification sent to the sales-tracking
// webhook on every checkout attempt and outcome.
type Payload struct {
	Type    enums.LeadEventType `json:"type"`
	Client  order.ClientData    `json:"client"`
	Summary pricing.Summary     `json:"summary"`
	Windows []order.WindowItem  `json:"windows"`
}

// Notifier records order intent/outcome with an external sales tracker.
// Capture is strictly best-effort: it must never fail the checkout flow.
type Notifier interface {
	Capture(ctx context.Context, payload Payload)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier POSTs lead events to the configured receiver. Without a
// configured URL it degrades to logging, mirroring the stubbed CRM sync.
type WebhookNotifier struct {
	url     string
	client  httpDoer
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// NewWebhookNotifier builds the notifier from lead-capture config.
func NewWebhookNotifier(cfg config.LeadsConfig, logg *logger.Logger, m *metrics.CheckoutMetrics) *WebhookNotifier {
	return &WebhookNotifier{
		url:     cfg.WebhookURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
		metrics: m,
	}
}

func (n *WebhookNotifier) Capture(ctx context.Context, payload Payload) {
	ctx = n.logg.WithField(ctx, "lead_event", payload.Type.String())

	if n.url == "" {
		n.logg.Info(ctx, "lead.capture.logged")
		n.metrics.IncLeadDelivery(payload.Type.String(), "skipped")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "lead.capture.encode_failed")
		n.metrics.IncLeadDelivery(payload.Type.String(), "error")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "lead.capture.request_failed")
		n.metrics.IncLeadDelivery(payload.Type.String(), "error")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "lead.capture.delivery_failed")
		n.metrics.IncLeadDelivery(payload.Type.String(), "error")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		n.logg.Warn(n.logg.WithField(ctx, "status", fmt.Sprint(resp.StatusCode)), "lead.capture.rejected")
		n.metrics.IncLeadDelivery(payload.Type.String(), "error")
		return
	}

	n.logg.Info(ctx, "lead.capture.delivered")
	n.metrics.IncLeadDelivery(payload.Type.String(), "ok")
}
