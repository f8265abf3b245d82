package products

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/imports"
	"github.com/22dimrodi-maker/student-orders/app/models"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func GetProductsAPI(c *fiber.Ctx, st *store.Store) error {
	rows, err := st.Products.Load()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load products"})
	}
	return c.JSON(fiber.Map{
		"products": rows,
		"count":    len(rows),
	})
}

func CreateProductAPI(c *fiber.Ctx, st *store.Store) error {
	type CreateRequest struct {
		Product string          `json:"product" form:"product"`
		Price   decimal.Decimal `json:"price" form:"price"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p := models.Product{Name: req.Product, Price: req.Price}
	if err := st.Products.Add(p); err != nil {
		if errors.Is(err, store.ErrDuplicateProduct) {
			return c.Status(409).JSON(fiber.Map{"warning": "Υπάρχει ήδη προϊόν με αυτό το όνομα."})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save product"})
	}
	return c.Status(201).JSON(p)
}

// ImportProductsAPI merges an uploaded workbook into the price list. The
// whole import goes through the store's save path, so duplicates collapse to
// the latest imported price.
func ImportProductsAPI(c *fiber.Ctx, st *store.Store) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}
	src, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer src.Close()

	imported, err := imports.Products(src)
	if err != nil {
		if errors.Is(err, imports.ErrNoUsableColumns) {
			return c.Status(400).JSON(fiber.Map{"error": "Δεν βρέθηκαν στήλες προϊόντων στο αρχείο."})
		}
		return c.Status(400).JSON(fiber.Map{"error": "Σφάλμα ανάγνωσης: " + err.Error()})
	}

	if err := st.Products.Merge(imported); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save products"})
	}
	return c.JSON(fiber.Map{"imported": len(imported)})
}

func DeleteProductAPI(c *fiber.Ctx, st *store.Store) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product name"})
	}
	removed, err := st.Products.Delete(name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete product"})
	}
	if removed == 0 {
		return c.Status(404).JSON(fiber.Map{"warning": "Δεν βρέθηκε το προϊόν."})
	}
	return c.JSON(fiber.Map{"deleted": removed})
}

func BulkDeleteProductsAPI(c *fiber.Ctx, st *store.Store) error {
	type BulkDeleteRequest struct {
		Names []string `json:"names"`
	}

	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Names) == 0 {
		return c.Status(400).JSON(fiber.Map{"warning": "Δεν επιλέχθηκαν προϊόντα."})
	}

	removed, err := st.Products.Delete(req.Names...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete products"})
	}
	return c.JSON(fiber.Map{"deleted": removed})
}
