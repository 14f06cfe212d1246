package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/auth"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
)

// AuthHandler handles registration and login (public).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Register a user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account data"
// @Success      201   {object}  dto.AuthResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "user registered")
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
