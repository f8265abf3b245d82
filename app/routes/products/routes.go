package products

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22dimrodi-maker/student-orders/app/routes/auth"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func SetupProductsRoutes(app *fiber.App, st *store.Store) {
	web := app.Group("/products")
	web.Use(auth.AuthMiddleware)
	web.Get("/", func(c *fiber.Ctx) error { return ProductsPage(c, st) })

	api := app.Group("/api/products")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetProductsAPI(c, st) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateProductAPI(c, st) })
	api.Post("/import", func(c *fiber.Ctx) error { return ImportProductsAPI(c, st) })
	api.Delete("/", func(c *fiber.Ctx) error { return BulkDeleteProductsAPI(c, st) })
	api.Delete("/:name", func(c *fiber.Ctx) error { return DeleteProductAPI(c, st) })
}

func ProductsPage(c *fiber.Ctx, st *store.Store) error {
	rows, err := st.Products.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
	}
	return c.Render("products/index", fiber.Map{
		"Title":       "Τιμοκατάλογος - Παραγγελίες Μαθητών",
		"CurrentPage": "products",
		"products":    rows,
	})
}
