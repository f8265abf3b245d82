package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/22dimrodi-maker/student-orders/app/config"
)

// SessionClaims carries the per-session identifier used to track the orders
// created in that session.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// CheckPIN compares a submitted PIN against the configured bcrypt hash.
func CheckPIN(pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(config.Get().AdminPINHash), []byte(pin))
	return err == nil
}

// GenerateSessionToken issues a signed token with a fresh session id.
func GenerateSessionToken() (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "student-orders",
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.Get().JWTSecret))
	return token, sessionID, err
}

// ValidateSession parses and verifies a session token.
func ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrInvalidKey
}
