package handlers

import (
	"crypto/subtle"
	"errors"
	"strings"

	"ctstudio/internal/config"
	applog "ctstudio/internal/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AdminAuth implements the demo back-office credential check: one
// configured account whose password is held only as a bcrypt hash, and a
// static bearer token issued on login.
type AdminAuth struct {
	Email string
	Token string
	hash  []byte
}

func NewAdminAuth(cfg config.Config) *AdminAuth {
	h, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	return &AdminAuth{Email: cfg.AdminEmail, Token: cfg.AdminToken, hash: h}
}

func (a *AdminAuth) Login(email, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), a.Email) {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return "", ErrBadCreds
	}
	return a.Token, nil
}

// RequireAdmin guards the back-office API: requests must carry the bearer
// token issued by Login.
func RequireAdmin(auth *AdminAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(auth.Token)) != 1 {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "Not authorized",
			})
		}
		return c.Next()
	}
}
