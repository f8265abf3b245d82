package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "session_token"

// LoginAPI checks the submitted PIN and, on success, sets the signed session
// cookie. Accepts JSON and form bodies.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		PIN string `json:"pin" form:"pin"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if !CheckPIN(strings.TrimSpace(req.PIN)) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid PIN"})
	}

	token, _, err := GenerateSessionToken()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"message": "Login successful"})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/auth/login")
}

// AuthMiddleware validates the session cookie (or a bearer token) and puts
// the session id into the request context. API requests get JSON 401s, web
// pages a redirect to the login form.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		authz := c.Get("Authorization")
		if strings.HasPrefix(authz, "Bearer ") {
			tokenString = strings.TrimPrefix(authz, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "No session found"})
		}
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateSession(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid session"})
		}
		return c.Redirect("/auth/login")
	}

	c.Locals("session_id", claims.SessionID)
	return c.Next()
}
