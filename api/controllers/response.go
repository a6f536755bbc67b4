package controllers

import (
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/types"
)

type quoteSummary struct {
	WindowCount  int          `json:"window_count"`
	TotalAreaM2  float64      `json:"total_area_m2"`
	FilmCost     types.Amount `json:"film_cost"`
	InstallCost  types.Amount `json:"install_cost"`
	DeliveryCost types.Amount `json:"delivery_cost"`
	TotalHT      types.Amount `json:"total_ht"`
}

type windowItemState struct {
	ID       uuid.UUID `json:"id"`
	WidthCM  float64   `json:"width_cm"`
	HeightCM float64   `json:"height_cm"`
	AreaM2   float64   `json:"area_m2"`
}

type orderState struct {
	SessionID   uuid.UUID         `json:"session_id"`
	Status      string            `json:"status"`
	Client      order.ClientData  `json:"client"`
	Windows     []windowItemState `json:"windows"`
	Options     order.Options     `json:"options"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Summary     quoteSummary      `json:"summary"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type chatMessageState struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// newOrderState projects the order and its freshly computed quote into the
// wire shape. Euro amounts round to two decimals here and nowhere else.
func newOrderState(o *order.Order, calc *pricing.Calculator) orderState {
	summary := calc.Calculate(o.Windows, o.Options)

	windows := make([]windowItemState, 0, len(o.Windows))
	for _, w := range o.Windows {
		windows = append(windows, windowItemState{
			ID:       w.ID,
			WidthCM:  w.WidthCM,
			HeightCM: w.HeightCM,
			AreaM2:   w.AreaM2(),
		})
	}

	return orderState{
		SessionID:   o.ID,
		Status:      o.Status.String(),
		Client:      o.Client,
		Windows:     windows,
		Options:     o.Options,
		FieldErrors: o.FieldErrors,
		Summary: quoteSummary{
			WindowCount:  summary.WindowCount,
			TotalAreaM2:  summary.TotalAreaM2,
			FilmCost:     types.Amount(summary.FilmCost),
			InstallCost:  types.Amount(summary.InstallCost),
			DeliveryCost: types.Amount(summary.DeliveryCost),
			TotalHT:      types.Amount(summary.TotalHT),
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func newTranscript(messages []order.ChatMessage) []chatMessageState {
	out := make([]chatMessageState, 0, len(messages))
	for _, m := range messages {
		out = append(out, chatMessageState{Role: m.Role.String(), Text: m.Text, At: m.At})
	}
	return out
}
