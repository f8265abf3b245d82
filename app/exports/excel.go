// Package exports serializes report tables for download: a multi-sheet xlsx
// workbook and paginated PDF documents. Both are returned as in-memory byte
// buffers and are never written to the data directory.
package exports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the xlsx sheet-name length limit.
const maxSheetName = 31

// Sheet is one named table of a workbook. Cell values may be string, int,
// decimal.Decimal or time.Time; anything else is stringified.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook serializes the sheets in order into a single xlsx workbook.
// Sheet names are truncated to the format's maximum length; dates get a
// yyyy-mm-dd display format and money cells two decimals, no other styling.
func Workbook(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("yyyy-mm-dd")})
	if err != nil {
		return nil, fmt.Errorf("failed to create date style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("0.00")})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	for i, sheet := range sheets {
		name := truncateSheetName(sheet.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		for c, h := range sheet.Header {
			addr, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(name, addr, h); err != nil {
				return nil, fmt.Errorf("failed to write header of %q: %w", name, err)
			}
		}

		for r, row := range sheet.Rows {
			for c, v := range row {
				addr, _ := excelize.CoordinatesToCellName(c+1, r+2)
				switch val := v.(type) {
				case time.Time:
					if val.IsZero() {
						continue
					}
					if err := f.SetCellValue(name, addr, val); err != nil {
						return nil, fmt.Errorf("failed to write %s!%s: %w", name, addr, err)
					}
					f.SetCellStyle(name, addr, addr, dateStyle)
				case decimal.Decimal:
					if err := f.SetCellValue(name, addr, val.InexactFloat64()); err != nil {
						return nil, fmt.Errorf("failed to write %s!%s: %w", name, addr, err)
					}
					f.SetCellStyle(name, addr, addr, moneyStyle)
				default:
					if err := f.SetCellValue(name, addr, val); err != nil {
						return nil, fmt.Errorf("failed to write %s!%s: %w", name, addr, err)
					}
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateSheetName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxSheetName {
		return name
	}
	return string(runes[:maxSheetName])
}

func strPtr(s string) *string { return &s }
