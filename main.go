package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/22dimrodi-maker/student-orders/app/config"
	"github.com/22dimrodi-maker/student-orders/app/routes/auth"
	"github.com/22dimrodi-maker/student-orders/app/routes/orders"
	"github.com/22dimrodi-maker/student-orders/app/routes/products"
	"github.com/22dimrodi-maker/student-orders/app/routes/reports"
	"github.com/22dimrodi-maker/student-orders/app/routes/students"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

// customErrorHandler renders error pages for web requests and JSON for the
// API routes.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Δεν βρέθηκε - Παραγγελίες Μαθητών",
			"CurrentPage": "",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Σφάλμα - Παραγγελίες Μαθητών",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	config.Init()

	st := store.Open(config.Get().DataDir)
	recent := orders.NewSessionTracker()

	engine := html.New("./app/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/orders")
	})

	auth.SetupAuthRoutes(app)
	products.SetupProductsRoutes(app, st)
	students.SetupStudentsRoutes(app, st)
	orders.SetupOrdersRoutes(app, st, recent)
	reports.SetupReportsRoutes(app, st)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	addr := ":" + config.Get().Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
