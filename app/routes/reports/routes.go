package reports

import (
	"github.com/gofiber/fiber/v2"

	summaries "github.com/22dimrodi-maker/student-orders/app/reports"
	"github.com/22dimrodi-maker/student-orders/app/routes/auth"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func SetupReportsRoutes(app *fiber.App, st *store.Store) {
	web := app.Group("/reports")
	web.Use(auth.AuthMiddleware)
	web.Get("/", func(c *fiber.Ctx) error { return ReportsPage(c, st) })

	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)
	api.Get("/summary", func(c *fiber.Ctx) error { return GetSummaryAPI(c, st) })
	api.Get("/export.xlsx", func(c *fiber.Ctx) error { return ExportWorkbookAPI(c, st) })
	api.Get("/slips.pdf", func(c *fiber.Ctx) error { return ExportSlipsAPI(c, st) })
	api.Get("/restock.pdf", func(c *fiber.Ctx) error { return ExportRestockAPI(c, st) })
}

func ReportsPage(c *fiber.Ctx, st *store.Store) error {
	ledger, err := st.Orders.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load orders")
	}
	filtered := summaries.Filter(ledger, criteriaFromQuery(c))

	return c.Render("reports/index", fiber.Map{
		"Title":       "Σύνοψη - Παραγγελίες Μαθητών",
		"CurrentPage": "reports",
		"byStudent":   summaries.ByStudent(filtered),
		"byProduct":   summaries.ByProduct(filtered),
		"bySchool":    summaries.BySchool(filtered),
		"count":       len(filtered),
	})
}
