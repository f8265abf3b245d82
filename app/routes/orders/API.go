package orders

import (
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/models"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func GetOrdersAPI(c *fiber.Ctx, st *store.Store) error {
	ledger, err := st.Orders.Load()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.After(ledger[j].Date)
	})
	return c.JSON(fiber.Map{
		"orders": ledger,
		"count":  len(ledger),
	})
}

// GetRecentOrdersAPI returns the ledger rows created in this session, most
// recent submission first.
func GetRecentOrdersAPI(c *fiber.Ctx, st *store.Store, recent *SessionTracker) error {
	sessionID, _ := c.Locals("session_id").(string)
	ids := recent.IDs(sessionID)
	if len(ids) == 0 {
		return c.JSON(fiber.Map{"orders": []models.OrderLine{}, "count": 0})
	}

	ledger, err := st.Orders.Load()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load orders"})
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var mine []models.OrderLine
	for _, o := range ledger {
		if wanted[o.ID] {
			mine = append(mine, o)
		}
	}
	return c.JSON(fiber.Map{"orders": mine, "count": len(mine)})
}

// CreateOrderAPI records one submission: one ledger row per line item, with
// the student fields and product prices snapshotted. A submission without
// items records the placeholder row.
func CreateOrderAPI(c *fiber.Ctx, st *store.Store, recent *SessionTracker) error {
	type CreateRequest struct {
		Date    string           `json:"date" form:"date"`
		Student string           `json:"student" form:"student"`
		School  string           `json:"school" form:"school"`
		Class   string           `json:"class" form:"class"`
		Items   []store.LineItem `json:"items"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Student == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student is required"})
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		date = time.Now().Truncate(24 * time.Hour)
	}

	created, err := st.Orders.Create(date, models.Student{
		Name:   req.Student,
		School: req.School,
		Class:  req.Class,
	}, req.Items)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save order"})
	}

	sessionID, _ := c.Locals("session_id").(string)
	ids := make([]string, len(created))
	for i, o := range created {
		ids[i] = o.ID
	}
	recent.Add(sessionID, ids...)

	return c.Status(201).JSON(fiber.Map{"orders": created, "count": len(created)})
}

func UpdateOrderAPI(c *fiber.Ctx, st *store.Store) error {
	id := c.Params("id")

	type UpdateRequest struct {
		Date      *string          `json:"date"`
		Student   *string          `json:"student"`
		School    *string          `json:"school"`
		Class     *string          `json:"class"`
		Product   *string          `json:"product"`
		Qty       *int             `json:"qty"`
		UnitPrice *decimal.Decimal `json:"unit_price"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patch := store.OrderPatch{
		Student:   req.Student,
		School:    req.School,
		Class:     req.Class,
		Product:   req.Product,
		Qty:       req.Qty,
		UnitPrice: req.UnitPrice,
	}
	if req.Date != nil {
		// A bad date degrades to "missing", matching the store's load rules.
		d, err := time.Parse(models.DateLayout, *req.Date)
		if err != nil {
			d = time.Time{}
		}
		patch.Date = &d
	}

	updated, err := st.Orders.Update(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update order"})
	}
	return c.JSON(updated)
}

func DeleteOrderAPI(c *fiber.Ctx, st *store.Store, recent *SessionTracker) error {
	id := c.Params("id")
	removed, err := st.Orders.Delete(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete order"})
	}
	if removed == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	sessionID, _ := c.Locals("session_id").(string)
	recent.Forget(sessionID, id)
	return c.JSON(fiber.Map{"deleted": removed})
}

func BulkDeleteOrdersAPI(c *fiber.Ctx, st *store.Store, recent *SessionTracker) error {
	type BulkDeleteRequest struct {
		IDs []string `json:"ids"`
	}

	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"warning": "Δεν επιλέχθηκαν παραγγελίες."})
	}

	removed, err := st.Orders.Delete(req.IDs...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete orders"})
	}
	sessionID, _ := c.Locals("session_id").(string)
	recent.Forget(sessionID, req.IDs...)
	return c.JSON(fiber.Map{"deleted": removed})
}
