package report

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	DefaultPricePerKWh = 0.5252
	DefaultCurrency    = "NIS"
)

// Tariff converts energy into money at a flat price per kWh.
type Tariff struct {
	PricePerKWh decimal.Decimal
	Currency    string
}

// NewTariff validates price and fills an empty currency with DefaultCurrency.
func NewTariff(price float64, currency string) (Tariff, error) {
	if price < 0 {
		return Tariff{}, errors.New("tariff: negative price")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Tariff{PricePerKWh: decimal.NewFromFloat(price), Currency: currency}, nil
}

// DefaultTariff is 0.5252 NIS per kWh.
func DefaultTariff() Tariff {
	t, _ := NewTariff(DefaultPricePerKWh, DefaultCurrency)
	return t
}

// Cost prices kwh. The energy is taken at its shortest float representation,
// so 5 kWh at 0.5252 is exactly 2.626.
func (t Tariff) Cost(kwh float64) decimal.Decimal {
	return decimal.NewFromFloat(kwh).Mul(t.PricePerKWh)
}
