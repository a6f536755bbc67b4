package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a display-layer euro amount. The quote math stays float64; Amount
// only fixes the wire representation to two decimals and never feeds back
// into stored totals.
type Amount float64

// MarshalJSON renders the amount with exactly two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	rounded := decimal.NewFromFloat(float64(a)).Round(2)
	return json.Marshal(rounded.InexactFloat64())
}

// UnmarshalJSON accepts any numeric value.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// String renders the two-decimal form, e.g. "225.00".
func (a Amount) String() string {
	return decimal.NewFromFloat(float64(a)).StringFixed(2)
}
