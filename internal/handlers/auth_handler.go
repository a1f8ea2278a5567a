package handlers

import (
	"portal/internal/middleware"
	"portal/internal/models"
	"portal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for login and profile changes.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/login", h.HandleLogin)
	router.Put("/profile", auth, h.HandleUpdateProfile)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest represents the request body for a profile update.
// An empty password means "keep the current one".
type ProfileRequest struct {
	Username *string `json:"username" validate:"required_without=Password"`
	Password *string `json:"password"`
}

// HandleLogin checks credentials and issues a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	res, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// HandleUpdateProfile renames the current user and/or resets the password.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, services.ErrUnauthorized)
	}
	updated, err := h.authService.UpdateProfile(c.UserContext(), user.ID, models.ProfileUpdate{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("update profile", zap.Uint("user_id", user.ID), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Profile updated successfully",
		"username": updated.Username,
	})
}
