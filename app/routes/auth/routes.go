package auth

import "github.com/gofiber/fiber/v2"

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in sessions go straight to the orders page.
	if tokenString := c.Cookies(sessionCookie); tokenString != "" {
		if _, err := ValidateSession(tokenString); err == nil {
			return c.Redirect("/orders")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Είσοδος - Παραγγελίες Μαθητών",
	}, "")
}
