package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

var productColumns = []string{"product", "price"}

// ProductStore owns the price list. The backing file is the source of truth;
// the in-memory table is a read cache invalidated on every write.
type ProductStore struct {
	repo Repository

	mu    sync.Mutex
	cache []models.Product
	valid bool
}

// Load returns the full price list, normalized. A missing or malformed
// backing file never fails: bad cells degrade to safe defaults.
func (ps *ProductStore) Load() ([]models.Product, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.valid {
		records, _, err := ps.repo.ReadAll()
		if err != nil {
			return nil, err
		}
		ps.cache = parseProducts(records)
		ps.valid = true
	}
	return append([]models.Product(nil), ps.cache...), nil
}

// Replace normalizes, de-duplicates and sorts rows, then rewrites the whole
// backing file and invalidates the cache.
func (ps *ProductStore) Replace(rows []models.Product) error {
	normalized := NormalizeProducts(rows)

	records := [][]string{productColumns}
	for _, p := range normalized {
		records = append(records, []string{p.Name, p.Price.StringFixed(2)})
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.valid = false
	if err := ps.repo.WriteAll(records); err != nil {
		return err
	}
	ps.cache = normalized
	ps.valid = true
	return nil
}

// Invalidate drops the cached table so the next Load rereads the file.
func (ps *ProductStore) Invalidate() {
	ps.mu.Lock()
	ps.valid = false
	ps.mu.Unlock()
}

// Add appends one product. A name equal to an existing one after trimming,
// ignoring case, is rejected with ErrDuplicateProduct and the store is left
// unchanged.
func (ps *ProductStore) Add(p models.Product) error {
	rows, err := ps.Load()
	if err != nil {
		return err
	}
	for _, existing := range rows {
		if existing.Key() == p.Key() {
			return ErrDuplicateProduct
		}
	}
	return ps.Replace(append(rows, p))
}

// Merge appends imported rows and pushes everything through the normal save
// path: later rows win on duplicate names, so a re-import updates prices.
func (ps *ProductStore) Merge(imported []models.Product) error {
	rows, err := ps.Load()
	if err != nil {
		return err
	}
	return ps.Replace(append(rows, imported...))
}

// Delete removes products by exact name. Returns how many rows were removed.
func (ps *ProductStore) Delete(names ...string) (int, error) {
	rows, err := ps.Load()
	if err != nil {
		return 0, err
	}

	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := rows[:0:0]
	for _, p := range rows {
		if !drop[p.Name] {
			kept = append(kept, p)
		}
	}
	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, ps.Replace(kept)
}

// PriceFor resolves a product name (case-insensitively) to its current
// price. Unknown products report false and a zero price.
func (ps *ProductStore) PriceFor(name string) (decimal.Decimal, bool) {
	rows, err := ps.Load()
	if err != nil {
		return decimal.Zero, false
	}
	key := models.Product{Name: name}.Key()
	for _, p := range rows {
		if p.Key() == key {
			return p.Price, true
		}
	}
	return decimal.Zero, false
}

// NormalizeProducts trims names, clamps prices to non-negative, drops rows
// without a name, keeps the latest row per name and sorts by name.
// Idempotent: normalizing an already-normalized table is a no-op.
func NormalizeProducts(rows []models.Product) []models.Product {
	latest := make(map[string]int)
	var out []models.Product
	for _, p := range rows {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		if p.Price.IsNegative() {
			p.Price = decimal.Zero
		}
		if i, ok := latest[p.Key()]; ok {
			out[i] = p
			continue
		}
		latest[p.Key()] = len(out)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out
}

func parseProducts(records [][]string) []models.Product {
	if len(records) == 0 {
		return nil
	}

	nameCol, priceCol := 0, 1
	body := records
	if i := headerIndex(records[0], "product"); i >= 0 {
		nameCol = i
		if j := headerIndex(records[0], "price"); j >= 0 {
			priceCol = j
		}
		body = records[1:]
	}

	var out []models.Product
	for _, rec := range body {
		out = append(out, models.Product{
			Name:  strings.TrimSpace(cell(rec, nameCol)),
			Price: parseMoney(cell(rec, priceCol)),
		})
	}
	return out
}
