package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one row of the price list. Names are unique case-insensitively.
type Product struct {
	Name  string          `json:"product"`
	Price decimal.Decimal `json:"price"`
}

// Key returns the uniqueness key for the product (trimmed, lowercased name).
func (p Product) Key() string {
	return strings.ToLower(strings.TrimSpace(p.Name))
}
