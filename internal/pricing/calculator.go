package pricing

import (
	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
)

// Summary is the live quote derived from the window list and options. It is
// recomputed on every observation and never stored.
type Summary struct {
	WindowCount  int     `json:"window_count"`
	TotalAreaM2  float64 `json:"total_area_m2"`
	FilmCost     float64 `json:"film_cost"`
	InstallCost  float64 `json:"install_cost"`
	DeliveryCost float64 `json:"delivery_cost"`
	TotalHT      float64 `json:"total_ht"`
}

// Calculator prices a window-film order against a fixed rate card.
type Calculator struct {
	rates config.PricingConfig
}

// NewCalculator builds a calculator for the given rate card.
func NewCalculator(rates config.PricingConfig) *Calculator {
	return &Calculator{rates: rates}
}

// Calculate aggregates the quote. film = totalArea * rate; install, when
// selected, is area-proportional with a flat floor; delivery is a flat fee.
// The design choice never contributes to cost.
func (c *Calculator) Calculate(windows []order.WindowItem, opts order.Options) Summary {
	var totalArea float64
	for _, w := range windows {
		totalArea += w.AreaM2()
	}

	filmCost := totalArea * c.rates.FilmPerM2

	var installCost float64
	if opts.ProfessionalInstallation {
		installCost = totalArea * c.rates.InstallPerM2
		if installCost < c.rates.MinInstallFee {
			installCost = c.rates.MinInstallFee
		}
	}

	var deliveryCost float64
	if opts.Delivery {
		deliveryCost = c.rates.ShippingFee
	}

	return Summary{
		WindowCount:  len(windows),
		TotalAreaM2:  totalArea,
		FilmCost:     filmCost,
		InstallCost:  installCost,
		DeliveryCost: deliveryCost,
		TotalHT:      filmCost + installCost + deliveryCost,
	}
}
