package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a purchasable invitation tier.
type Package struct {
	ID        int64
	Name      string
	Price     int64
	Discount  int
	Features  []string
	CreatedAt time.Time
}

// FinalPrice returns price minus the percentage discount, rounded half away
// from zero to whole currency units.
func (p Package) FinalPrice() int64 {
	if p.Discount <= 0 {
		return p.Price
	}
	discount := p.Discount
	if discount > 100 {
		discount = 100
	}
	price := decimal.NewFromInt(p.Price)
	cut := price.Mul(decimal.NewFromInt(int64(discount))).Div(decimal.NewFromInt(100))
	return price.Sub(cut).Round(0).IntPart()
}
