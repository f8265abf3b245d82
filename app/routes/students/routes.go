package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22dimrodi-maker/student-orders/app/routes/auth"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func SetupStudentsRoutes(app *fiber.App, st *store.Store) {
	web := app.Group("/students")
	web.Use(auth.AuthMiddleware)
	web.Get("/", func(c *fiber.Ctx) error { return StudentsPage(c, st) })

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetStudentsAPI(c, st) })
	api.Get("/schools", func(c *fiber.Ctx) error { return GetSchoolsAPI(c, st) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateStudentAPI(c, st) })
	api.Post("/import", func(c *fiber.Ctx) error { return ImportStudentsAPI(c, st) })
	api.Delete("/", func(c *fiber.Ctx) error { return DeleteStudentsAPI(c, st) })
}

func StudentsPage(c *fiber.Ctx, st *store.Store) error {
	rows, err := st.Students.Load()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}
	return c.Render("students/index", fiber.Map{
		"Title":       "Μαθητές - Παραγγελίες Μαθητών",
		"CurrentPage": "students",
		"students":    rows,
	})
}
