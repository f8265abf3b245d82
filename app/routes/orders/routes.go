package orders

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/22dimrodi-maker/student-orders/app/routes/auth"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func SetupOrdersRoutes(app *fiber.App, st *store.Store, recent *SessionTracker) {
	web := app.Group("/orders")
	web.Use(auth.AuthMiddleware)
	web.Get("/", func(c *fiber.Ctx) error { return OrdersPage(c, st) })

	api := app.Group("/api/orders")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetOrdersAPI(c, st) })
	api.Get("/recent", func(c *fiber.Ctx) error { return GetRecentOrdersAPI(c, st, recent) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateOrderAPI(c, st, recent) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateOrderAPI(c, st) })
	api.Delete("/", func(c *fiber.Ctx) error { return BulkDeleteOrdersAPI(c, st, recent) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteOrderAPI(c, st, recent) })
}

func OrdersPage(c *fiber.Ctx, st *store.Store) error {
	products, err := st.Products.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
	}
	students, err := st.Students.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}
	ledger, err := st.Orders.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load orders")
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.After(ledger[j].Date)
	})

	return c.Render("orders/index", fiber.Map{
		"Title":       "Παραγγελίες - Παραγγελίες Μαθητών",
		"CurrentPage": "orders",
		"products":    products,
		"students":    students,
		"orders":      ledger,
	})
}
