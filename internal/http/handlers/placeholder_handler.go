package handlers

import (
	"fmt"
	"html"
	"math/rand"

	"github.com/gofiber/fiber/v2"
)

type PlaceholderHandler struct{}

// GET /api/placeholder — generates an SVG placeholder image for catalog
// entries without uploaded artwork.
func (h *PlaceholderHandler) Generate(c *fiber.Ctx) error {
	width := c.Query("width", "800")
	height := c.Query("height", "600")
	text := c.Query("text", "Placeholder")
	bg := c.Query("bg")
	if bg == "" {
		bg = fmt.Sprintf("hsl(%d, 80%%, 50%%)", rand.Intn(360))
	}
	color := c.Query("color", "white")

	svg := fmt.Sprintf(`<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="%s" />
  <text x="50%%" y="50%%" font-family="Arial, sans-serif" font-size="24" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>
</svg>`,
		html.EscapeString(width), html.EscapeString(height),
		html.EscapeString(bg), html.EscapeString(color), html.EscapeString(text))

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendString(svg)
}
