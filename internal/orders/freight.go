package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/config"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// FlatFreight quotes the same configured amount for every address. Geocoded
// pricing lives outside this core; this is the default collaborator.
type FlatFreight struct {
	amount decimal.Decimal
}

// NewFlatFreight parses the configured flat amount.
func NewFlatFreight(cfg config.FreightConfig) (*FlatFreight, error) {
	amount, err := decimal.NewFromString(cfg.FlatAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid freight amount %q: %w", cfg.FlatAmount, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("freight amount cannot be negative")
	}
	return &FlatFreight{amount: amount}, nil
}

// FreightFor returns the flat amount.
func (f *FlatFreight) FreightFor(context.Context, types.Address) (decimal.Decimal, error) {
	return f.amount, nil
}
