// Package imports adapts external workbook files onto the canonical record
// structures. Header names are matched case-insensitively in Greek or
// English; files without recognizable headers fall back to positional
// columns. The caller merges the result through the store's own save path,
// so imported rows inherit every store invariant.
package imports

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

// ErrNoUsableColumns is reported when a workbook holds nothing that can be
// mapped onto the target record kind. Nothing is imported in that case.
var ErrNoUsableColumns = errors.New("no usable columns in the uploaded file")

var studentAliases = map[string][]string{
	"student": {"student", "ονοματεπώνυμο", "μαθητής", "όνομα"},
	"school":  {"school", "σχολείο"},
	"class":   {"class", "τμήμα", "τάξη"},
}

var productAliases = map[string][]string{
	"product": {"product", "προϊόν"},
	"price":   {"price", "τιμή"},
}

// Students reads every sheet of the workbook in order and concatenates the
// rows. Recognized headers map by name; otherwise the first one to three
// columns map positionally to (student, school, class), missing fields
// defaulting to empty.
func Students(r io.Reader) ([]models.Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	var merged []models.Student
	usable := false
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		rows = dropEmptyRows(rows)
		if len(rows) == 0 {
			continue
		}

		nameCol, schoolCol, classCol := 0, 1, 2
		body := rows
		if i := findColumn(rows[0], studentAliases["student"]); i >= 0 {
			nameCol = i
			schoolCol = findColumn(rows[0], studentAliases["school"])
			classCol = findColumn(rows[0], studentAliases["class"])
			body = rows[1:]
		}

		usable = true
		for _, rec := range body {
			merged = append(merged, models.Student{
				Name:   cellAt(rec, nameCol),
				School: cellAt(rec, schoolCol),
				Class:  cellAt(rec, classCol),
			})
		}
	}

	if !usable {
		return nil, ErrNoUsableColumns
	}
	return merged, nil
}

// Products reads every sheet in order; headers map by name, otherwise the
// first two columns map positionally to (product, price). Unparseable prices
// degrade to zero, matching the store's own normalization.
func Products(r io.Reader) ([]models.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	var merged []models.Product
	usable := false
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		rows = dropEmptyRows(rows)
		if len(rows) == 0 {
			continue
		}

		nameCol, priceCol := 0, 1
		body := rows
		if i := findColumn(rows[0], productAliases["product"]); i >= 0 {
			nameCol = i
			priceCol = findColumn(rows[0], productAliases["price"])
			body = rows[1:]
		}

		usable = true
		for _, rec := range body {
			merged = append(merged, models.Product{
				Name:  cellAt(rec, nameCol),
				Price: parsePrice(cellAt(rec, priceCol)),
			})
		}
	}

	if !usable {
		return nil, ErrNoUsableColumns
	}
	return merged, nil
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, alias := range aliases {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

func cellAt(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parsePrice(cell string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func dropEmptyRows(rows [][]string) [][]string {
	var out [][]string
	for _, rec := range rows {
		empty := true
		for _, c := range rec {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out
}
