package exports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookRoundTrip(t *testing.T) {
	data, err := Workbook([]Sheet{
		{
			Name:   "Ανά μαθητή",
			Header: []string{"student", "school", "total"},
			Rows: [][]any{
				{"Maria", "1st Primary", money("8.70")},
				{"Nikos", "1st Primary", money("1.50")},
			},
		},
		{
			Name:   "Αναλυτικά",
			Header: []string{"date", "student", "qty"},
			Rows: [][]any{
				{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "Maria", 3},
				{time.Time{}, "Nikos", 1},
			},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ανά μαθητή", "Αναλυτικά"}, f.GetSheetList())

	got, err := f.GetCellValue("Ανά μαθητή", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Maria", got)

	got, err = f.GetCellValue("Ανά μαθητή", "C2")
	require.NoError(t, err)
	assert.Equal(t, "8.70", got)

	got, err = f.GetCellValue("Αναλυτικά", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", got)

	// Missing dates stay blank rather than rendering the zero time.
	got, err = f.GetCellValue("Αναλυτικά", "A3")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWorkbookTruncatesLongSheetNames(t *testing.T) {
	long := strings.Repeat("Σ", 40)
	data, err := Workbook([]Sheet{{Name: long, Header: []string{"x"}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	names := f.GetSheetList()
	require.Len(t, names, 1)
	assert.Equal(t, strings.Repeat("Σ", 31), names[0])
}
