package students

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/22dimrodi-maker/student-orders/app/imports"
	"github.com/22dimrodi-maker/student-orders/app/models"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

func GetStudentsAPI(c *fiber.Ctx, st *store.Store) error {
	rows, err := st.Students.Load()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load students"})
	}
	return c.JSON(fiber.Map{
		"students": rows,
		"count":    len(rows),
	})
}

func GetSchoolsAPI(c *fiber.Ctx, st *store.Store) error {
	schools, err := st.Students.Schools()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load schools"})
	}
	return c.JSON(fiber.Map{"schools": schools})
}

func CreateStudentAPI(c *fiber.Ctx, st *store.Store) error {
	var s models.Student
	if err := c.BodyParser(&s); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := st.Students.Add(s); err != nil {
		if errors.Is(err, store.ErrDuplicateStudent) {
			return c.Status(409).JSON(fiber.Map{"warning": "Υπάρχει ήδη."})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save student"})
	}
	return c.Status(201).JSON(s)
}

// ImportStudentsAPI merges an uploaded workbook into the roster. All sheets
// are read in order; merging goes through the store save path so duplicates
// collapse on the (name, school, class) triple.
func ImportStudentsAPI(c *fiber.Ctx, st *store.Store) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}
	src, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer src.Close()

	imported, err := imports.Students(src)
	if err != nil {
		if errors.Is(err, imports.ErrNoUsableColumns) {
			return c.Status(400).JSON(fiber.Map{"error": "Δεν βρέθηκαν στήλες μαθητών στο αρχείο."})
		}
		return c.Status(400).JSON(fiber.Map{"error": "Σφάλμα ανάγνωσης: " + err.Error()})
	}

	if err := st.Students.Merge(imported); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save students"})
	}
	return c.JSON(fiber.Map{"imported": len(imported)})
}

// DeleteStudentsAPI removes roster rows: either one exact (student, school,
// class) triple, or in bulk by school and/or class allow-lists.
func DeleteStudentsAPI(c *fiber.Ctx, st *store.Store) error {
	type DeleteRequest struct {
		Student *models.Student `json:"student"`
		Schools []string        `json:"schools"`
		Classes []string        `json:"classes"`
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Student != nil {
		removed, err := st.Students.Delete(*req.Student)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
		}
		if !removed {
			return c.Status(404).JSON(fiber.Map{"warning": "Δεν βρέθηκε."})
		}
		return c.JSON(fiber.Map{"deleted": 1})
	}

	if len(req.Schools) == 0 && len(req.Classes) == 0 {
		return c.Status(400).JSON(fiber.Map{"warning": "Δεν επιλέχθηκε σχολείο ή τμήμα."})
	}
	removed, err := st.Students.DeleteWhere(req.Schools, req.Classes)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete students"})
	}
	return c.JSON(fiber.Map{"deleted": removed})
}
