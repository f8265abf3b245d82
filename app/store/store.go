package store

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	productsFile = "products.csv"
	studentsFile = "students.csv"
	ordersFile   = "orders.csv"

	// PlaceholderProduct is recorded when an order is submitted with no
	// product rows at all. An empty submission still leaves a ledger row
	// behind; see DESIGN.md before changing this.
	PlaceholderProduct = "(none)"
)

var (
	ErrDuplicateProduct = errors.New("product with this name already exists")
	ErrDuplicateStudent = errors.New("student already exists in this school and class")
	ErrOrderNotFound    = errors.New("order not found")
)

// Store bundles the three record-kind stores over one data directory.
type Store struct {
	Products *ProductStore
	Students *StudentStore
	Orders   *OrderStore
}

// Open returns a Store backed by CSV files under dir.
func Open(dir string) *Store {
	return New(
		NewFileRepository(filepath.Join(dir, productsFile)),
		NewFileRepository(filepath.Join(dir, studentsFile)),
		NewFileRepository(filepath.Join(dir, ordersFile)),
	)
}

// New builds a Store over explicit repositories. Tests inject
// MemoryRepository here.
func New(products, students, orders Repository) *Store {
	s := &Store{
		Products: &ProductStore{repo: products},
		Students: &StudentStore{repo: students},
		Orders:   &OrderStore{repo: orders},
	}
	s.Orders.prices = s.Products
	return s
}

// parseMoney coerces a cell to a non-negative decimal. Anything unparseable
// or negative degrades to zero.
func parseMoney(cell string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// parseQty coerces a cell to a non-negative integer, zero on bad input.
func parseQty(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		// Tolerate "3.0" style cells written by spreadsheet tools.
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

func cell(records []string, idx int) string {
	if idx < 0 || idx >= len(records) {
		return ""
	}
	return records[idx]
}

// headerIndex maps a header row to column positions, case-insensitively.
// Returns -1 for absent columns.
func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
