package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/22dimrodi-maker/student-orders/app/config"
	"github.com/22dimrodi-maker/student-orders/app/exports"
	"github.com/22dimrodi-maker/student-orders/app/models"
	summaries "github.com/22dimrodi-maker/student-orders/app/reports"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

// criteriaFromQuery builds filter criteria from the query string: repeated or
// comma-separated allow-lists plus an inclusive from/to date range.
func criteriaFromQuery(c *fiber.Ctx) summaries.Criteria {
	crit := summaries.Criteria{
		Students: splitList(c.Query("students")),
		Schools:  splitList(c.Query("schools")),
		Classes:  splitList(c.Query("classes")),
		Products: splitList(c.Query("products")),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(models.DateLayout, v); err == nil {
			crit.From = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(models.DateLayout, v); err == nil {
			crit.To = t
		}
	}
	return crit
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFiltered(c *fiber.Ctx, st *store.Store) ([]models.OrderLine, error) {
	ledger, err := st.Orders.Load()
	if err != nil {
		return nil, err
	}
	return summaries.Filter(ledger, criteriaFromQuery(c)), nil
}

func GetSummaryAPI(c *fiber.Ctx, st *store.Store) error {
	filtered, err := loadFiltered(c, st)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}
	return c.JSON(fiber.Map{
		"by_student":     summaries.ByStudent(filtered),
		"by_class":       summaries.ByClass(filtered),
		"by_school":      summaries.BySchool(filtered),
		"by_product":     summaries.ByProduct(filtered),
		"by_product_qty": summaries.ByProductQty(filtered),
		"count":          len(filtered),
	})
}

// ExportWorkbookAPI streams the summary workbook: one sheet per report view
// plus the filtered ledger detail, delivered from memory.
func ExportWorkbookAPI(c *fiber.Ctx, st *store.Store) error {
	filtered, err := loadFiltered(c, st)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}

	detail := append([]models.OrderLine(nil), filtered...)
	sort.SliceStable(detail, func(i, j int) bool {
		a, b := detail[i], detail[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Student != b.Student {
			return a.Student < b.Student
		}
		return a.Date.Before(b.Date)
	})

	sheets := []exports.Sheet{
		groupSheet("Ανά μαθητή", []string{"student", "school", "class", "orders", "qty", "total"}, summaries.ByStudent(filtered),
			func(g summaries.Group) []any { return []any{g.Student, g.School, g.Class, g.Orders, g.Qty, g.Total} }),
		groupSheet("Ανά προϊόν", []string{"product", "orders", "qty", "total"}, summaries.ByProduct(filtered),
			func(g summaries.Group) []any { return []any{g.Product, g.Orders, g.Qty, g.Total} }),
		groupSheet("Για προμήθεια", []string{"product", "qty", "orders", "total"}, summaries.ByProductQty(filtered),
			func(g summaries.Group) []any { return []any{g.Product, g.Qty, g.Orders, g.Total} }),
		groupSheet("Ανά σχολείο", []string{"school", "orders", "qty", "total"}, summaries.BySchool(filtered),
			func(g summaries.Group) []any { return []any{g.School, g.Orders, g.Qty, g.Total} }),
		detailSheet(detail),
	}

	data, err := exports.Workbook(sheets)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="summary.xlsx"`)
	return c.Send(data)
}

// ExportSlipsAPI streams the paginated PDF order slips for the filtered rows.
func ExportSlipsAPI(c *fiber.Ctx, st *store.Store) error {
	filtered, err := loadFiltered(c, st)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}

	cfg := config.Get()
	// Printed documents use Latin labels; see DESIGN.md on PDF fonts.
	data, err := exports.OrderSlips(filtered, "Order Slips", exports.SlipOptions{
		LogoPath: cfg.LogoPath,
		AppURL:   cfg.AppURL,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build document"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="slips.pdf"`)
	return c.Send(data)
}

// ExportRestockAPI streams the per-product restocking table, highest
// quantity first.
func ExportRestockAPI(c *fiber.Ctx, st *store.Store) error {
	filtered, err := loadFiltered(c, st)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}

	cols := []exports.Column{
		{Header: "Product", Width: 6},
		{Header: "Qty", Width: 2, Right: true},
		{Header: "Orders", Width: 2, Right: true},
		{Header: "Total", Width: 2, Money: true},
	}
	var rows [][]string
	for _, g := range summaries.ByProductQty(filtered) {
		rows = append(rows, []string{
			g.Product,
			fmt.Sprintf("%d", g.Qty),
			fmt.Sprintf("%d", g.Orders),
			g.Total.StringFixed(2),
		})
	}

	cfg := config.Get()
	data, err := exports.Table("Restocking", cols, rows, exports.SlipOptions{
		LogoPath: cfg.LogoPath,
		AppURL:   cfg.AppURL,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build document"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="restock.pdf"`)
	return c.Send(data)
}

func groupSheet(name string, header []string, groups []summaries.Group, row func(summaries.Group) []any) exports.Sheet {
	s := exports.Sheet{Name: name, Header: header}
	for _, g := range groups {
		s.Rows = append(s.Rows, row(g))
	}
	return s
}

func detailSheet(rows []models.OrderLine) exports.Sheet {
	s := exports.Sheet{
		Name:   "Αναλυτικά",
		Header: []string{"order_id", "date", "student", "school", "class", "product", "qty", "unit_price", "total"},
	}
	for _, o := range rows {
		s.Rows = append(s.Rows, []any{
			o.ID, o.Date, o.Student, o.School, o.Class, o.Product, o.Qty, o.UnitPrice, o.Total,
		})
	}
	return s
}
