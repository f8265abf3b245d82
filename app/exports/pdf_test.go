package exports

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func orderLine(student, school, class, product string, qty int, unitPrice string) models.OrderLine {
	o := models.OrderLine{
		ID:        student + product,
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Student:   student,
		School:    school,
		Class:     class,
		Product:   product,
		Qty:       qty,
		UnitPrice: money(unitPrice),
	}
	o.RecomputeTotal()
	return o
}

// bigLedger spreads orders over enough students to force several page breaks.
func bigLedger() []models.OrderLine {
	var rows []models.OrderLine
	for school := 1; school <= 3; school++ {
		for i := 0; i < 40; i++ {
			rows = append(rows,
				orderLine(
					fmt.Sprintf("Student %02d", i), fmt.Sprintf("School %d", school), "B1",
					"Juice", 2, "1.50",
				),
				orderLine(
					fmt.Sprintf("Student %02d", i), fmt.Sprintf("School %d", school), "B1",
					"Toast", 1, "1.20",
				),
			)
		}
	}
	return rows
}

func TestBuildSlipDocumentHierarchy(t *testing.T) {
	rows := []models.OrderLine{
		orderLine("Maria", "1st Primary", "B1", "Juice", 3, "1.50"),
		orderLine("Maria", "1st Primary", "B1", "Toast", 1, "1.20"),
		orderLine("Nikos", "1st Primary", "C2", "Juice", 1, "1.50"),
		orderLine("Eleni", "2nd Primary", "B1", "Toast", 4, "1.20"),
	}

	doc := buildSlipDocument(rows)
	require.Len(t, doc.Schools, 2)

	first := doc.Schools[0]
	assert.Equal(t, "1st Primary", first.School)
	require.Len(t, first.Students, 2)
	assert.Equal(t, "Maria", first.Students[0].Student)
	require.Len(t, first.Students[0].Lines, 2)
	assert.True(t, first.Students[0].Subtotal.Equal(money("5.70")))
	assert.True(t, first.Total.Equal(money("7.20")))

	assert.True(t, doc.Grand.Equal(money("12.00")))
}

func TestBuildSlipDocumentGrandTotalAcrossManyPages(t *testing.T) {
	rows := bigLedger()

	var want decimal.Decimal
	for _, o := range rows {
		want = want.Add(o.Total)
	}

	doc := buildSlipDocument(rows)
	var schoolSum decimal.Decimal
	for _, school := range doc.Schools {
		var studentSum decimal.Decimal
		for _, student := range school.Students {
			studentSum = studentSum.Add(student.Subtotal)
		}
		assert.True(t, studentSum.Equal(school.Total), "school total must equal the sum of its subtotals")
		schoolSum = schoolSum.Add(school.Total)
	}
	assert.True(t, schoolSum.Equal(doc.Grand))
	assert.True(t, doc.Grand.Equal(want), "grand total must cover every row regardless of page layout")
}

func TestBuildSlipDocumentSplitsStudentByClass(t *testing.T) {
	rows := []models.OrderLine{
		orderLine("Maria", "1st Primary", "B1", "Juice", 1, "1.50"),
		orderLine("Maria", "1st Primary", "C2", "Juice", 1, "1.50"),
	}
	doc := buildSlipDocument(rows)
	require.Len(t, doc.Schools, 1)
	assert.Len(t, doc.Schools[0].Students, 2, "same name in two classes is two slips")
}

func TestOrderSlipsRendersPDF(t *testing.T) {
	pdf, err := OrderSlips(bigLedger(), "Order slips", SlipOptions{
		AppURL: "http://localhost:8080",
		Now:    time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestOrderSlipsEmptyLedger(t *testing.T) {
	pdf, err := OrderSlips(nil, "Order slips", SlipOptions{Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestTableRendersPDF(t *testing.T) {
	cols := []Column{
		{Header: "Product", Width: 6},
		{Header: "Qty", Width: 2, Right: true},
		{Header: "Total", Width: 4, Money: true},
	}
	rows := make([][]string, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, []string{fmt.Sprintf("Product %03d", i), "3", "4.5"})
	}

	pdf, err := Table("Restocking", cols, rows, SlipOptions{Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestMoneyHeader(t *testing.T) {
	assert.True(t, MoneyHeader("Total"))
	assert.True(t, MoneyHeader("Unit price"))
	assert.True(t, MoneyHeader("Σύνολο"))
	assert.False(t, MoneyHeader("Qty"))
	assert.False(t, MoneyHeader("Product"))
}
