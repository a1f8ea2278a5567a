package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadHandler stores uploaded icons on local disk. Every file gets a fresh
// name so uploads never overwrite each other.
type UploadHandler struct {
	dir     string
	baseURL string
	log     *zap.Logger
}

// NewUploadHandler creates a new UploadHandler writing into dir and building
// public URLs under baseURL.
func NewUploadHandler(dir, baseURL string, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// RegisterRoutes registers the upload route and serves stored files.
func (h *UploadHandler) RegisterRoutes(app *fiber.App, router fiber.Router, auth fiber.Handler) {
	router.Post("/upload", auth, h.HandleUpload)
	app.Static("/static/uploads", h.dir)
}

// HandleUpload saves the multipart "file" field and returns its public URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, err)
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.log.Error("create upload dir", zap.String("dir", h.dir), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Upload failed"})
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
		h.log.Error("save upload", zap.String("filename", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Upload failed"})
	}

	h.log.Info("file uploaded", zap.String("filename", name), zap.Int64("size", file.Size))
	return c.JSON(fiber.Map{
		"url":      fmt.Sprintf("%s/static/uploads/%s", h.baseURL, name),
		"filename": name,
	})
}
