package store

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

var orderColumns = []string{"order_id", "date", "student", "school", "class", "product", "qty", "unit_price", "total"}

// LineItem is one product row of an order submission.
type LineItem struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

// OrderPatch carries field changes for an in-place edit. Nil fields are left
// untouched; the total is always recomputed after applying.
type OrderPatch struct {
	Date      *time.Time       `json:"date"`
	Student   *string          `json:"student"`
	School    *string          `json:"school"`
	Class     *string          `json:"class"`
	Product   *string          `json:"product"`
	Qty       *int             `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// OrderStore owns the ledger. Ledger rows are historical snapshots: names
// and unit prices are copied at creation time and never re-synced with the
// roster or the price list. Every mutation reloads the full ledger first,
// which narrows but does not close the lost-update window between sessions.
type OrderStore struct {
	repo   Repository
	prices *ProductStore

	mu    sync.Mutex
	cache []models.OrderLine
	valid bool
}

func (os *OrderStore) Load() ([]models.OrderLine, error) {
	os.mu.Lock()
	defer os.mu.Unlock()

	if !os.valid {
		records, _, err := os.repo.ReadAll()
		if err != nil {
			return nil, err
		}
		os.cache = parseOrders(records)
		os.valid = true
	}
	return append([]models.OrderLine(nil), os.cache...), nil
}

func (os *OrderStore) Replace(rows []models.OrderLine) error {
	normalized := NormalizeOrders(rows)

	records := [][]string{orderColumns}
	for _, o := range normalized {
		records = append(records, []string{
			o.ID,
			o.DateString(),
			o.Student,
			o.School,
			o.Class,
			o.Product,
			strconv.Itoa(o.Qty),
			o.UnitPrice.StringFixed(2),
			o.Total.StringFixed(2),
		})
	}

	os.mu.Lock()
	defer os.mu.Unlock()
	os.valid = false
	if err := os.repo.WriteAll(records); err != nil {
		return err
	}
	os.cache = normalized
	os.valid = true
	return nil
}

func (os *OrderStore) Invalidate() {
	os.mu.Lock()
	os.valid = false
	os.mu.Unlock()
}

// Create records one order submission: one ledger row per line item, each
// with a fresh id and the product's current price snapshotted. Unknown
// products resolve to a zero price rather than failing. An empty submission
// still records a single placeholder row (see PlaceholderProduct).
func (os *OrderStore) Create(date time.Time, student models.Student, items []LineItem) ([]models.OrderLine, error) {
	rows, err := os.Load()
	if err != nil {
		return nil, err
	}

	student = trimStudent(student)
	if len(items) == 0 {
		items = []LineItem{{Product: PlaceholderProduct, Qty: 0}}
	}

	created := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Product)
		price := decimal.Zero
		if name != PlaceholderProduct {
			price, _ = os.prices.PriceFor(name)
		}
		line := models.OrderLine{
			ID:        uuid.NewString(),
			Date:      date,
			Student:   student.Name,
			School:    student.School,
			Class:     student.Class,
			Product:   name,
			Qty:       item.Qty,
			UnitPrice: price,
		}
		if line.Qty < 0 {
			line.Qty = 0
		}
		line.RecomputeTotal()
		created = append(created, line)
	}

	if err := os.Replace(append(rows, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

// Update reloads the ledger, applies the patch to the row with the given id
// and recomputes the total. Returns ErrOrderNotFound for unknown ids.
func (os *OrderStore) Update(id string, patch OrderPatch) (models.OrderLine, error) {
	rows, err := os.Load()
	if err != nil {
		return models.OrderLine{}, err
	}

	idx := -1
	for i, o := range rows {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.OrderLine{}, ErrOrderNotFound
	}

	o := rows[idx]
	if patch.Date != nil {
		o.Date = *patch.Date
	}
	if patch.Student != nil {
		o.Student = strings.TrimSpace(*patch.Student)
	}
	if patch.School != nil {
		o.School = strings.TrimSpace(*patch.School)
	}
	if patch.Class != nil {
		o.Class = strings.TrimSpace(*patch.Class)
	}
	if patch.Product != nil {
		o.Product = strings.TrimSpace(*patch.Product)
	}
	if patch.Qty != nil {
		o.Qty = *patch.Qty
		if o.Qty < 0 {
			o.Qty = 0
		}
	}
	if patch.UnitPrice != nil {
		o.UnitPrice = *patch.UnitPrice
		if o.UnitPrice.IsNegative() {
			o.UnitPrice = decimal.Zero
		}
	}
	o.RecomputeTotal()
	rows[idx] = o

	if err := os.Replace(rows); err != nil {
		return models.OrderLine{}, err
	}
	return o, nil
}

// Delete removes ledger rows by id. Returns how many rows were removed so
// callers can warn on an empty match.
func (os *OrderStore) Delete(ids ...string) (int, error) {
	rows, err := os.Load()
	if err != nil {
		return 0, err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := rows[:0:0]
	for _, o := range rows {
		if !drop[o.ID] {
			kept = append(kept, o)
		}
	}
	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, os.Replace(kept)
}

// NormalizeOrders trims text fields, clamps qty and unit price to
// non-negative, regenerates missing ids, de-duplicates by id (keep latest)
// and recomputes every total. Insertion order is preserved; reports sort on
// read.
func NormalizeOrders(rows []models.OrderLine) []models.OrderLine {
	latest := make(map[string]int)
	var out []models.OrderLine
	for _, o := range rows {
		o.Student = strings.TrimSpace(o.Student)
		o.School = strings.TrimSpace(o.School)
		o.Class = strings.TrimSpace(o.Class)
		o.Product = strings.TrimSpace(o.Product)
		o.ID = strings.TrimSpace(o.ID)
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if o.Qty < 0 {
			o.Qty = 0
		}
		if o.UnitPrice.IsNegative() {
			o.UnitPrice = decimal.Zero
		}
		o.RecomputeTotal()
		if i, ok := latest[o.ID]; ok {
			out[i] = o
			continue
		}
		latest[o.ID] = len(out)
		out = append(out, o)
	}
	return out
}

func parseOrders(records [][]string) []models.OrderLine {
	if len(records) == 0 {
		return nil
	}

	// Canonical column order, with legacy files (no order_id, no class)
	// tolerated through the header map.
	cols := map[string]int{}
	body := records
	if headerIndex(records[0], "date") >= 0 || headerIndex(records[0], "order_id") >= 0 {
		for _, name := range orderColumns {
			cols[name] = headerIndex(records[0], name)
		}
		body = records[1:]
	} else {
		for i, name := range orderColumns {
			cols[name] = i
		}
	}

	var out []models.OrderLine
	for _, rec := range body {
		o := models.OrderLine{
			ID:        strings.TrimSpace(cell(rec, cols["order_id"])),
			Date:      parseDate(cell(rec, cols["date"])),
			Student:   strings.TrimSpace(cell(rec, cols["student"])),
			School:    strings.TrimSpace(cell(rec, cols["school"])),
			Class:     strings.TrimSpace(cell(rec, cols["class"])),
			Product:   strings.TrimSpace(cell(rec, cols["product"])),
			Qty:       parseQty(cell(rec, cols["qty"])),
			UnitPrice: parseMoney(cell(rec, cols["unit_price"])),
		}
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		o.RecomputeTotal()
		out = append(out, o)
	}
	return out
}

// parseDate coerces a cell to a calendar date; bad input degrades to the
// zero time ("missing"), never an error.
func parseDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}
	}
	for _, layout := range []string{models.DateLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, cell); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}
