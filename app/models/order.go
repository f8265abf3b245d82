package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used in the orders file and exports.
const DateLayout = "2006-01-02"

// OrderLine is one denormalized ledger row. Student, school, class, product
// and unit price are snapshots taken at creation time and are never re-derived
// from the roster or the price list.
type OrderLine struct {
	ID        string          `json:"order_id"`
	Date      time.Time       `json:"date"`
	Student   string          `json:"student"`
	School    string          `json:"school"`
	Class     string          `json:"class"`
	Product   string          `json:"product"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// RecomputeTotal restores the total = qty × unit_price invariant. Must be
// called after any change to Qty or UnitPrice.
func (o *OrderLine) RecomputeTotal() {
	o.Total = o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Qty)))
}

// DateString renders the order date, empty when the date is missing.
func (o OrderLine) DateString() string {
	if o.Date.IsZero() {
		return ""
	}
	return o.Date.Format(DateLayout)
}
