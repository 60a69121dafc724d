package handlers

import (
	"os"
	"path/filepath"
	"strings"

	applog "ctstudio/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadHandler struct {
	MediaDir string
}

var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// POST /api/upload (admin) — stores a product image under a generated
// name and returns its public URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No file uploaded",
		})
	}

	ext, ok := allowedImageTypes[file.Header.Get("Content-Type")]
	if !ok {
		applog.Security(c, "upload.type.reject", map[string]any{"type": file.Header.Get("Content-Type")})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid file type, only images are allowed",
		})
	}

	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		applog.Error(c, "upload.mkdir.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not store file",
		})
	}

	name := "product_" + uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(h.MediaDir, name)); err != nil {
		applog.Error(c, "upload.save.fail", err, map[string]any{"name": name})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not store file",
		})
	}

	applog.Audit(c, "upload.save", map[string]any{"name": name, "size": file.Size})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "File uploaded",
		"url":     "/uploads/" + name,
	})
}

// Guard against path traversal when serving uploads.
func SafeMediaPath(base, requested string) (string, bool) {
	raw := strings.ToLower(requested)
	if strings.Contains(raw, "..") || strings.Contains(raw, "%2e") || strings.Contains(raw, "\x00") {
		return "", false
	}
	clean := filepath.Clean(requested)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return filepath.Join(base, clean), true
}
