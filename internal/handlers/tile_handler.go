package handlers

import (
	"portal/internal/models"
	"portal/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TileHandler handles HTTP requests for portal tiles.
type TileHandler struct {
	service *services.TileService
	log     *zap.Logger
}

// NewTileHandler creates a new TileHandler.
func NewTileHandler(service *services.TileService, log *zap.Logger) *TileHandler {
	return &TileHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the tile routes. Listing is public; every
// mutation goes through auth first.
func (h *TileHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/apps", h.HandleListTiles)
	router.Post("/apps", auth, h.HandleCreateTile)
	router.Put("/apps/:id", auth, h.HandleUpdateTile)
	router.Delete("/apps/:id", auth, h.HandleDeleteTile)
}

// HandleListTiles returns every tile shown on the portal.
func (h *TileHandler) HandleListTiles(c *fiber.Ctx) error {
	tiles, err := h.service.ListTiles(c.UserContext())
	if err != nil {
		h.log.Error("list tiles", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(tiles)
}

// HandleCreateTile creates a new tile.
func (h *TileHandler) HandleCreateTile(c *fiber.Ctx) error {
	var in models.TileInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}

	tile, err := h.service.CreateTile(c.UserContext(), in)
	if err != nil {
		h.log.Warn("create tile", zap.Error(err))
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tile)
}

// HandleUpdateTile applies a partial update to a tile.
func (h *TileHandler) HandleUpdateTile(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var patch models.TilePatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, err)
	}

	tile, err := h.service.UpdateTile(c.UserContext(), id, patch)
	if err != nil {
		h.log.Warn("update tile", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(tile)
}

// HandleDeleteTile retires a tile.
func (h *TileHandler) HandleDeleteTile(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.service.DeleteTile(c.UserContext(), id); err != nil {
		h.log.Warn("delete tile", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}
